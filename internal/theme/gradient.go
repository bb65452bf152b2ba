package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient is an ordered pair of colour stops: start, end.
type Gradient [2]string

// Start returns the first stop.
func (g Gradient) Start() string { return g[0] }

// End returns the last stop.
func (g Gradient) End() string { return g[1] }

// Steps interpolates n hex colours from start to end in Lab space. Stops that
// fail to parse degrade to repeating the start stop.
func (g Gradient) Steps(n int) []string {
	if n <= 0 {
		return nil
	}
	from, errFrom := ParseColor(g[0])
	to, errTo := ParseColor(g[1])
	out := make([]string, n)
	if errFrom != nil || errTo != nil {
		for i := range out {
			out[i] = g[0]
		}
		return out
	}
	if n == 1 {
		out[0] = from.Hex()
		return out
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = from.BlendLab(to, t).Clamped().Hex()
	}
	return out
}

// ParseColor accepts "#RRGGBB", "#RGB" and "rgba(r,g,b,a)" strings. Alpha is
// composited over black, which is how the terminal renders a shadow.
func ParseColor(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "#") {
		if len(v) == 4 {
			v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
		}
		return colorful.Hex(v)
	}

	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(lower[len("rgba("):len(lower)-1], ",")
		if len(parts) != 4 {
			return colorful.Color{}, fmt.Errorf("malformed rgba colour %q", value)
		}
		var channels [3]float64
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || n < 0 || n > 255 {
				return colorful.Color{}, fmt.Errorf("malformed rgba channel in %q", value)
			}
			channels[i] = float64(n) / 255
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return colorful.Color{}, fmt.Errorf("malformed rgba alpha in %q", value)
		}
		return colorful.Color{R: channels[0] * alpha, G: channels[1] * alpha, B: channels[2] * alpha}, nil
	}

	return colorful.Color{}, fmt.Errorf("unsupported colour %q", value)
}

// Hex normalises any supported colour string to "#rrggbb" for terminal use.
// Unparseable input is returned unchanged.
func Hex(value string) string {
	c, err := ParseColor(value)
	if err != nil {
		return value
	}
	return c.Hex()
}
