package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/todos/internal/logger"
	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxResponseBytes   = 4 << 20
)

// HTTPBackend talks to a hosted deployment over its HTTP function API:
// POST /api/query and /api/mutation with {"path", "args", "format"}.
type HTTPBackend struct {
	baseURL *url.URL
	client  *http.Client
	log     *logger.Logger
}

// HTTPOption customises an HTTPBackend.
type HTTPOption func(*HTTPBackend)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(b *HTTPBackend) {
		if client != nil {
			b.client = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(b *HTTPBackend) {
		if timeout > 0 {
			b.client.Timeout = timeout
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) HTTPOption {
	return func(b *HTTPBackend) {
		b.log = log
	}
}

// NewHTTPBackend validates deploymentURL and returns a backend for it.
func NewHTTPBackend(deploymentURL string, opts ...HTTPOption) (*HTTPBackend, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(deploymentURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", deploymentURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", deploymentURL)
	}

	b := &HTTPBackend{
		baseURL: parsed,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

type functionRequest struct {
	Path   string         `json:"path"`
	Args   map[string]any `json:"args"`
	Format string         `json:"format"`
}

type functionResponse struct {
	Status       string          `json:"status"`
	Value        json.RawMessage `json:"value"`
	ErrorMessage string          `json:"errorMessage"`
}

// List implements Backend.
func (b *HTTPBackend) List(ctx context.Context) ([]Todo, error) {
	raw, err := b.call(ctx, "query", FuncGetTodos, map[string]any{})
	if err != nil {
		return nil, err
	}
	var todos []Todo
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &todos); err != nil {
			return nil, apperrors.NewRemoteError(FuncGetTodos, fmt.Errorf("decode todos: %w", err))
		}
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// Add implements Backend.
func (b *HTTPBackend) Add(ctx context.Context, text string) (string, error) {
	normalized, err := NormalizeText(text)
	if err != nil {
		return "", err
	}
	raw, err := b.call(ctx, "mutation", FuncAddTodo, map[string]any{"text": normalized})
	if err != nil {
		return "", err
	}
	var id string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", apperrors.NewRemoteError(FuncAddTodo, fmt.Errorf("decode id: %w", err))
		}
	}
	return id, nil
}

// Toggle implements Backend.
func (b *HTTPBackend) Toggle(ctx context.Context, id string) error {
	_, err := b.call(ctx, "mutation", FuncToggleTodo, map[string]any{"id": id})
	return err
}

// Delete implements Backend.
func (b *HTTPBackend) Delete(ctx context.Context, id string) error {
	_, err := b.call(ctx, "mutation", FuncDeleteTodo, map[string]any{"id": id})
	return err
}

func (b *HTTPBackend) call(ctx context.Context, kind, function string, args map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(functionRequest{Path: function, Args: args, Format: "json"})
	if err != nil {
		return nil, apperrors.NewRemoteError(function, err)
	}

	endpoint := b.baseURL.JoinPath("api", kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewRemoteError(function, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := b.log.WithField("function", function)
	started := time.Now()

	resp, err := b.client.Do(req)
	if err != nil {
		log.Error(err, "backend request failed")
		return nil, apperrors.NewRemoteError(function, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.NewRemoteError(function, fmt.Errorf("read response: %w", err))
	}

	log.WithFields(map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("backend call completed")

	var decoded functionResponse
	decodeErr := json.Unmarshal(payload, &decoded)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(payload))
		if decodeErr == nil && decoded.ErrorMessage != "" {
			msg = decoded.ErrorMessage
		}
		return nil, apperrors.NewRemoteError(function, fmt.Errorf("http %d: %s", resp.StatusCode, msg))
	}
	if decodeErr != nil {
		return nil, apperrors.NewRemoteError(function, fmt.Errorf("decode response: %w", decodeErr))
	}

	switch decoded.Status {
	case "success":
		return decoded.Value, nil
	case "error":
		return nil, apperrors.NewRemoteError(function, errors.New(decoded.ErrorMessage))
	default:
		return nil, apperrors.NewRemoteError(function, fmt.Errorf("unexpected response status %q", decoded.Status))
	}
}

var _ Backend = (*HTTPBackend)(nil)
