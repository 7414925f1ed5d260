package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// ProductRepository puerto de persistencia para Product (DIP).
// UpdateStock solo debe invocarse desde el recálculo del agregado, dentro de
// la misma transacción que mutó las filas ProductSize.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByNama(nama string) (*entity.Product, error)
	List(search string, limit, offset int) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int) error
	Delete(id string) error
	ListIDs() ([]string, error)
	// Para el chequeo de alertas de stock.
	ListLowStock() ([]*entity.Product, error)            // 0 < stock <= min_stock
	ListOutOfStock() ([]*entity.Product, error)          // stock == 0
	ListRestockedWithAlerts() ([]*entity.Product, error) // stock > min_stock con logs pendientes
}
