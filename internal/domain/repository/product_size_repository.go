package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// ProductSizeRepository puerto para las filas (producto, talla) — la unidad
// autoritativa de stock. Usado dentro de transacciones para garantizar
// consistencia; las variantes *ForUpdate bloquean la fila (SELECT FOR UPDATE)
// para que el chequeo de disponibilidad y el débito sean un solo paso atómico.
type ProductSizeRepository interface {
	Create(ps *entity.ProductSize) error
	GetByID(id string) (*entity.ProductSize, error)
	GetByProductAndSize(productID, sizeID string) (*entity.ProductSize, error)
	GetForUpdate(productID, sizeID string) (*entity.ProductSize, error)
	GetForUpdateByID(id string) (*entity.ProductSize, error)
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
	ListByProduct(productID string) ([]*entity.ProductSize, error)
	List() ([]*entity.ProductSize, error)
	// SumByProduct devuelve SUM(quantity) de las filas del producto, leída de
	// las filas ya escritas en la transacción en curso (nunca un snapshot viejo).
	SumByProduct(productID string) (int, error)
}
