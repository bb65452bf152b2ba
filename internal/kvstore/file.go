package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

const fileFormatVersion = "1.0"

// storeFile is the JSON document persisted by FileStore.
type storeFile struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore persists values in a single JSON document, rewritten atomically on
// every Set.
type FileStore struct {
	path    string
	mu      sync.RWMutex
	version string
	values  map[string]string
}

// NewFileStore creates a FileStore and loads any existing document at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		version: fileFormatVersion,
		values:  make(map[string]string),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError(DriverFile, "open", "", fmt.Errorf("create store directory: %w", err))
	}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, apperrors.NewStorageError(DriverFile, "open", "", err)
		}
	}

	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse store: %w", err)
	}

	if file.Version != "" {
		s.version = file.Version
	}
	if file.Values != nil {
		s.values = file.Values
	}

	return nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, apperrors.NewStorageError(DriverFile, "get", key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set implements Store. The in-memory map is only updated once the document
// has been written.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError(DriverFile, "set", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	if err := s.write(next); err != nil {
		return apperrors.NewStorageError(DriverFile, "set", key, err)
	}
	s.values = next
	return nil
}

// write must be called with s.mu held.
func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(storeFile{Version: s.version, Values: values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Close implements Store. FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
