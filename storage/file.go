// ABOUTME: File-backed store writing one JSON document per key
// ABOUTME: Stores CLI sessions in the XDG config directory

package storage

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// File stores each key as a file inside dir
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file store rooted at dir. The directory is created on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// DefaultDir returns the default session directory following the XDG spec
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "capacity-planner")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "capacity-planner")
}

// path maps a key to a file name that cannot escape dir
func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes through a temp file and rename so readers never see a partial value
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
