// Package media implementa el almacenamiento de imágenes de producto en el
// filesystem local. Las URLs guardadas en products.image son rutas relativas
// al directorio base.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sepatuhub/pos-api/internal/application/catalog"
)

var _ catalog.MediaStore = (*FSStore)(nil)

// FSStore almacenamiento de archivos en disco bajo un directorio base.
type FSStore struct {
	baseDir string
}

// NewFSStore construye el store. Crea el directorio base si no existe.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("media: crear directorio base: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// Remove borra el archivo asociado a la ruta. Rutas fuera del directorio base
// o inexistentes se ignoran en silencio: el borrado es best-effort post-commit.
func (s *FSStore) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(filepath.Join(s.baseDir, filepath.Base(path)))
	if !strings.HasPrefix(clean, filepath.Clean(s.baseDir)) {
		return nil
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media: borrar archivo: %w", err)
	}
	return nil
}
