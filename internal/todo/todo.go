// Package todo is the client side of the hosted to-do backend: the record
// type, the query/mutation surface and its implementations.
package todo

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Backend function paths.
const (
	FuncGetTodos   = "todos:getTodos"
	FuncAddTodo    = "todos:addTodo"
	FuncToggleTodo = "todos:toggleTodo"
	FuncDeleteTodo = "todos:deleteTodo"
)

var (
	// ErrEmptyText is returned when a to-do would have no text.
	ErrEmptyText = errors.New("todo text cannot be empty")
	// ErrNotFound is returned for an unknown to-do ID.
	ErrNotFound = errors.New("todo not found")
)

// Todo is one record as returned by getTodos.
type Todo struct {
	ID           string  `json:"_id"`
	CreationTime float64 `json:"_creationTime"`
	Text         string  `json:"text"`
	IsCompleted  bool    `json:"isCompleted"`
}

// CreatedAt converts the backend's millisecond timestamp.
func (t Todo) CreatedAt() time.Time {
	if t.CreationTime == 0 {
		return time.Time{}
	}
	ms := int64(t.CreationTime)
	return time.UnixMilli(ms)
}

// Backend is the query/mutation surface the list screen depends on.
type Backend interface {
	List(ctx context.Context) ([]Todo, error)
	Add(ctx context.Context, text string) (string, error)
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// NormalizeText trims text and rejects empty input.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	return trimmed, nil
}

// Counts returns total and completed tallies.
func Counts(todos []Todo) (total, completed int) {
	for _, t := range todos {
		if t.IsCompleted {
			completed++
		}
	}
	return len(todos), completed
}
