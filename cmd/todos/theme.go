package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/theme"
	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

type themeShowOptions struct {
	jsonOutput bool
}

func newThemeCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeShow(cmd, rootFlags, &themeShowOptions{})
		},
	}

	cmd.AddCommand(newThemeShowCmd(rootFlags))
	cmd.AddCommand(newThemeToggleCmd(rootFlags))
	cmd.AddCommand(newThemeSetCmd(rootFlags))

	return cmd
}

func newThemeShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &themeShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active theme and its colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeShow(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func newThemeToggleCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeTheme(cmd, rootFlags, func(ctx context.Context, p *theme.Provider) error {
				return p.ToggleDarkMode(ctx)
			})
		},
	}
}

func newThemeSetCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Choose light or dark mode explicitly",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, err := parseMode(args[0])
			if err != nil {
				return newCommandError("set theme", "parsing mode", err, "Use 'light' or 'dark'.")
			}
			return changeTheme(cmd, rootFlags, func(ctx context.Context, p *theme.Provider) error {
				return p.SetDarkMode(ctx, dark)
			})
		},
	}
}

func parseMode(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	default:
		return false, fmt.Errorf("unknown mode %q", value)
	}
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// loadProvider opens the app and waits for the stored preference. A corrupt
// preference is reported on stderr and light mode is used.
func loadProvider(cmd *cobra.Command, flags *rootFlags) (*appContext, context.Context, error) {
	app, err := newAppContext(cmd, flags, appOptions{})
	if err != nil {
		return nil, nil, err
	}

	ctx := theme.WithProvider(cmd.Context(), app.provider)
	if err := app.provider.Init(ctx); err != nil {
		var prefErr *apperrors.PreferenceError
		if !errors.As(err, &prefErr) {
			app.Close()
			return nil, nil, newCommandError("load theme", "reading stored preference", err, "Check your preference store.")
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using light mode\n", err)
	}
	return app, ctx, nil
}

func changeTheme(cmd *cobra.Command, flags *rootFlags, change func(context.Context, *theme.Provider) error) error {
	app, ctx, err := loadProvider(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	provider := theme.MustFromContext(ctx)
	if err := change(ctx, provider); err != nil {
		return newCommandError("save theme", "writing preference", err, "Check storage.driver and storage.path in your configuration.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", modeName(provider.IsDarkMode()))
	return nil
}

type themeJSONPayload struct {
	DarkMode bool              `json:"dark_mode"`
	Scheme   string            `json:"scheme"`
	Colors   map[string]string `json:"colors"`
	Status   string            `json:"status_bar_style"`
}

func runThemeShow(cmd *cobra.Command, flags *rootFlags, opts *themeShowOptions) error {
	app, ctx, err := loadProvider(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	state := theme.MustFromContext(ctx).State()
	colors := schemeColors(state.Colors)

	if opts.jsonOutput {
		payload := themeJSONPayload{
			DarkMode: state.IsDarkMode,
			Scheme:   state.Colors.Name,
			Colors:   colors,
			Status:   string(state.Colors.StatusBarStyle),
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n\n", modeName(state.IsDarkMode))

	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-22s %s\n", name, colors[name])
	}
	return nil
}

func schemeColors(s theme.ColorScheme) map[string]string {
	colors := map[string]string{
		"background":            s.Background,
		"surface":               s.Surface,
		"text":                  s.Text,
		"textMuted":             s.TextMuted,
		"border":                s.Border,
		"primary":               s.Primary,
		"success":               s.Success,
		"warning":               s.Warning,
		"danger":                s.Danger,
		"shadow":                s.Shadow,
		"backgrounds.input":     s.Backgrounds.Input,
		"backgrounds.editInput": s.Backgrounds.EditInput,
	}
	for name, g := range s.Gradients.All() {
		colors["gradients."+name] = g.Start() + " -> " + g.End()
	}
	return colors
}
