// Package storage guarda las fotos de perfil en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/domain"
)

var _ ports.PhotoStore = (*DiskPhotoStore)(nil)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// DiskPhotoStore escribe <uuid><ext> bajo dir y las publica bajo publicPath.
type DiskPhotoStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewDiskPhotoStore crea el directorio si no existe.
func NewDiskPhotoStore(dir, publicPath string, maxBytes int64) (*DiskPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de fotos: %w", err)
	}
	return &DiskPhotoStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/"), maxBytes: maxBytes}, nil
}

// Save valida extensión y tamaño y escribe el archivo. Devuelve la URL pública.
func (s *DiskPhotoStore) Save(_ context.Context, photo ports.Photo) (string, error) {
	ext := strings.ToLower(filepath.Ext(photo.Filename))
	if !allowedExt[ext] {
		return "", domain.NewValidationError("La foto debe ser jpg, jpeg, png, gif o webp")
	}
	if photo.Size > s.maxBytes {
		return "", domain.NewValidationError(fmt.Sprintf("La foto no puede superar %d bytes", s.maxBytes))
	}

	name := uuid.New().String() + ext
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear foto: %w", err)
	}
	// Size viene del cliente; el límite real se comprueba al copiar.
	n, err := io.Copy(f, io.LimitReader(photo.Content, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxBytes {
		err = domain.NewValidationError(fmt.Sprintf("La foto no puede superar %d bytes", s.maxBytes))
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return path.Join(s.publicPath, name), nil
}

// Delete borra una foto publicada por este store. URLs ajenas o archivos ausentes se ignoran.
func (s *DiskPhotoStore) Delete(_ context.Context, url string) error {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar foto: %w", err)
	}
	return nil
}
