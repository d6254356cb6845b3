package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists each slot as a JSON document in a directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated slot behind.
type FileStore struct {
	dir string
}

// NewFile returns a store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

// Load reads a slot file, or returns ErrSlotNotFound if it does not exist.
func (f *FileStore) Load(slot string) ([]byte, error) {
	data, err := os.ReadFile(f.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

// Save writes the slot file atomically.
func (f *FileStore) Save(slot string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), f.path(slot)); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}
