package todo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryBackend keeps to-dos in process memory. It stands in for the hosted
// backend when none is configured.
type MemoryBackend struct {
	mu    sync.RWMutex
	todos map[string]Todo
	now   func() time.Time
}

// NewMemoryBackend returns a backend seeded with the given records.
func NewMemoryBackend(seed ...Todo) *MemoryBackend {
	b := &MemoryBackend{
		todos: make(map[string]Todo, len(seed)),
		now:   time.Now,
	}
	for _, t := range seed {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		b.todos[t.ID] = t
	}
	return b
}

// List implements Backend, newest first like getTodos.
func (b *MemoryBackend) List(ctx context.Context) ([]Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Todo, 0, len(b.todos))
	for _, t := range b.todos {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreationTime == out[j].CreationTime {
			return out[i].ID < out[j].ID
		}
		return out[i].CreationTime > out[j].CreationTime
	})
	return out, nil
}

// Add implements Backend.
func (b *MemoryBackend) Add(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized, err := NormalizeText(text)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.todos[id] = Todo{
		ID:           id,
		CreationTime: float64(b.now().UnixMilli()),
		Text:         normalized,
	}
	return id, nil
}

// Toggle implements Backend.
func (b *MemoryBackend) Toggle(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.todos[id]
	if !ok {
		return ErrNotFound
	}
	t.IsCompleted = !t.IsCompleted
	b.todos[id] = t
	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.todos[id]; !ok {
		return ErrNotFound
	}
	delete(b.todos, id)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
