package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Backend is a durable string-keyed store holding opaque values.
type Backend interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// Delete is idempotent; deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryBackend keeps values in process memory. Useful for tests and for
// sessions that should not touch disk.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileBackend stores each key as <dir>/<key>.json. Writes land in a temp file
// that is renamed over the target, so readers never observe a partial value.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir when missing and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir reports the root directory.
func (f *FileBackend) Dir() string {
	return f.dir
}

func (f *FileBackend) Get(key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileBackend) Put(key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	tmp := filepath.Join(f.dir, "."+key+"-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func (f *FileBackend) Delete(key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileBackend) path(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func checkKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed != key || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
