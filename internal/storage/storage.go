// Package storage persists uploaded and processed images on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes files under a base directory with collision-free names.
type Store struct {
	baseDir string
}

// NewStore ensures dir exists and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Store{baseDir: dir}, nil
}

// Dir returns the base directory the store writes into.
func (s *Store) Dir() string {
	return s.baseDir
}

// uniqueName builds "<field>-<unix ms>-<short uuid><ext>" so concurrent
// uploads of identically named files never collide.
func uniqueName(field, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), short, ext)
}

// Save streams r to a new uniquely named file and returns its filename
// (relative to the store's base directory).
func (s *Store) Save(field, originalName string, r io.Reader) (string, error) {
	name := uniqueName(field, originalName)
	path := filepath.Join(s.baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return name, nil
}

// SaveBytes writes data to a new uniquely named file with the given
// extension (e.g. ".png") and returns its filename.
func (s *Store) SaveBytes(field, ext string, data []byte) (string, error) {
	name := uniqueName(field, "placeholder"+ext)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return name, nil
}

// Path resolves a stored filename to its absolute location on disk.
// The filename is cleaned and confined to the base directory.
func (s *Store) Path(name string) (string, error) {
	clean := filepath.Base(filepath.Clean(name))
	if clean == "." || clean == ".." || clean == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.baseDir, clean), nil
}

// Open opens a stored file for reading.
func (s *Store) Open(name string) (*os.File, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file %s: %w", name, err)
	}
	return f, nil
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stored file %s: %w", name, err)
	}
	return nil
}
