// Package local guarda archivos en disco bajo un directorio raíz. Sirve
// para dev y despliegues chicos de un solo nodo; para algo más grande el
// puerto filestore.Store admite un adapter de object storage.
package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"titulares-admin/internal/ports/filestore"
)

var ErrInvalidPath = errors.New("invalid path")

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, ErrInvalidPath
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Save(ctx context.Context, path string, content []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

func (s *Store) Open(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// resolve rechaza paths que escapen del directorio raíz (.. o absolutos).
func (s *Store) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return "", ErrInvalidPath
	}

	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}

	return filepath.Join(s.root, clean), nil
}

var _ filestore.Store = (*Store)(nil)
