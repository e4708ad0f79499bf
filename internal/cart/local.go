package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"agrihub/internal/domain"
)

// FileSlot persists the guest cart as one JSON file, mirroring the single
// string-keyed slot a browser session would use. Unparseable content reads
// as an empty cart rather than an error.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (f *FileSlot) Load() ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt slot: start over empty.
		return nil, nil
	}
	return items, nil
}

func (f *FileSlot) Save(items []domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

func (f *FileSlot) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySlot is an in-process LocalStore for sessions that have no durable
// slot configured.
type MemorySlot struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Load() ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CartItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemorySlot) Save(items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]domain.CartItem, len(items))
	copy(m.items, items)
	return nil
}

func (m *MemorySlot) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}
