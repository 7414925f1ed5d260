package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// Puertos CRUD del catálogo. CountProducts soporta el guard de borrado:
// un brand/category/type/talla con productos referenciándolo no se elimina.

type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id int64) (*entity.Brand, error)
	GetByNama(nama string) (*entity.Brand, error)
	List(search string, limit, offset int) ([]*entity.Brand, int, error)
	Update(brand *entity.Brand) error
	Delete(id int64) error
	CountProducts(id int64) (int, error)
}

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetByNama(nama string) (*entity.Category, error)
	List(search string, limit, offset int) ([]*entity.Category, int, error)
	Update(category *entity.Category) error
	Delete(id int64) error
	CountProducts(id int64) (int, error)
}

type ProductTypeRepository interface {
	Create(pt *entity.ProductType) error
	GetByID(id string) (*entity.ProductType, error)
	GetByNama(nama string) (*entity.ProductType, error)
	List() ([]*entity.ProductType, error)
	Update(pt *entity.ProductType) error
	Delete(id string) error
	CountProducts(id string) (int, error)
}

type SizeRepository interface {
	Create(size *entity.Size) error
	GetByID(id string) (*entity.Size, error)
	GetByLabel(label string) (*entity.Size, error)
	List() ([]*entity.Size, error)
	Delete(id string) error
	CountProductSizes(id string) (int, error)
}

type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	List() ([]*entity.StockBatch, error)
	Update(batch *entity.StockBatch) error
	Delete(id string) error
}

type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(search string, limit, offset int) ([]*entity.Customer, int, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
