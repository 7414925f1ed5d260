package dto

import "github.com/shopspring/decimal"

// NamedRequest alta/edición de entidades de taxonomía (brand, category, type).
type NamedRequest struct {
	Nama  string `json:"nama" validate:"required"`
	Image string `json:"image"`
}

// SizeRequest alta de talla.
type SizeRequest struct {
	Label string `json:"label" validate:"required"`
}

// StockBatchRequest alta/edición de lote de compra.
type StockBatchRequest struct {
	Nama         string          `json:"nama" validate:"required"`
	TotalHarga   decimal.Decimal `json:"totalHarga" validate:"required"`
	JumlahSepatu int             `json:"jumlahSepatu" validate:"required,gt=0"`
}

// CustomerRequest alta/edición de cliente.
type CustomerRequest struct {
	Nama    string `json:"nama" validate:"required"`
	Telepon string `json:"telepon"`
	Alamat  string `json:"alamat"`
}

// BrandResponse marca.
type BrandResponse struct {
	ID    int64  `json:"id"`
	Nama  string `json:"nama"`
	Image string `json:"image,omitempty"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}

// ProductTypeResponse tipo de producto.
type ProductTypeResponse struct {
	ID   string `json:"id"`
	Nama string `json:"nama"`
}

// SizeResponse talla.
type SizeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// StockBatchResponse lote de compra.
type StockBatchResponse struct {
	ID           string          `json:"id"`
	Nama         string          `json:"nama"`
	TotalHarga   decimal.Decimal `json:"totalHarga"`
	JumlahSepatu int             `json:"jumlahSepatu"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID      string `json:"id"`
	Nama    string `json:"nama"`
	Telepon string `json:"telepon,omitempty"`
	Alamat  string `json:"alamat,omitempty"`
}

// BrandListResponse listado paginado de marcas.
type BrandListResponse struct {
	Data []BrandResponse `json:"data"`
	Meta PageResponse    `json:"meta"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
	Meta PageResponse       `json:"meta"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Data []CustomerResponse `json:"data"`
	Meta PageResponse       `json:"meta"`
}
