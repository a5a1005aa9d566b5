package ports

import (
	"context"
	"io"
)

// Photo archivo de foto de perfil recibido en la petición.
type Photo struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// PhotoStore guarda fotos de perfil y devuelve la URL pública.
type PhotoStore interface {
	Save(ctx context.Context, photo Photo) (url string, err error)
	// Delete borra una foto previa; URLs desconocidas se ignoran.
	Delete(ctx context.Context, url string) error
}
