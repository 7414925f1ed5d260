package catalog

import "context"

// MediaStore puerto de almacenamiento de imágenes de producto. Remove se
// invoca post-commit: un fallo al borrar el archivo no revierte el borrado
// del producto.
type MediaStore interface {
	Remove(ctx context.Context, path string) error
}
