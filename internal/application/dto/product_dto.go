package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SizeQuantity par talla-cantidad para el alta de variantes junto al producto.
type SizeQuantity struct {
	SizeID   string `json:"sizeId" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// CreateProductRequest alta de producto. MinStock por defecto 0; Kondisi por
// defecto BARU. Las variantes de talla se crean en la misma unidad atómica.
type CreateProductRequest struct {
	Nama          string          `json:"nama" validate:"required"`
	Deskripsi     string          `json:"deskripsi"`
	Image         string          `json:"image"`
	HargaBeli     decimal.Decimal `json:"hargaBeli"`
	HargaJual     decimal.Decimal `json:"hargaJual"`
	MinStock      int             `json:"minStock" validate:"min=0"`
	Kondisi       string          `json:"kondisi" validate:"omitempty,oneof=BARU BEKAS REKONDISI"`
	CategoryID    int64           `json:"categoryId" validate:"required"`
	BrandID       int64           `json:"brandId" validate:"required"`
	ProductTypeID string          `json:"productTypeId" validate:"required"`
	StockBatchID  *string         `json:"stockBatchId"`
	Sizes         []SizeQuantity  `json:"sizes" validate:"dive"`
}

// UpdateProductRequest actualización parcial de campos escalares. Los precios
// son editables: los items históricos conservan sus snapshots. Las variantes
// de talla se gestionan por el ledger, no por este request.
type UpdateProductRequest struct {
	Nama          *string          `json:"nama"`
	Deskripsi     *string          `json:"deskripsi"`
	Image         *string          `json:"image"`
	HargaBeli     *decimal.Decimal `json:"hargaBeli"`
	HargaJual     *decimal.Decimal `json:"hargaJual"`
	MinStock      *int             `json:"minStock" validate:"omitempty,min=0"`
	Kondisi       *string          `json:"kondisi" validate:"omitempty,oneof=BARU BEKAS REKONDISI"`
	CategoryID    *int64           `json:"categoryId"`
	BrandID       *int64           `json:"brandId"`
	ProductTypeID *string          `json:"productTypeId"`
	StockBatchID  *string          `json:"stockBatchId"`
}

// ProductSizeResponse una variante (producto, talla) con su stock.
type ProductSizeResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	SizeID    string `json:"sizeId"`
	SizeLabel string `json:"sizeLabel,omitempty"`
	Quantity  int    `json:"quantity"`
}

// ProductResponse representación de salida del producto.
type ProductResponse struct {
	ID            string                `json:"id"`
	Nama          string                `json:"nama"`
	Deskripsi     string                `json:"deskripsi,omitempty"`
	Image         string                `json:"image,omitempty"`
	HargaBeli     decimal.Decimal       `json:"hargaBeli"`
	HargaJual     decimal.Decimal       `json:"hargaJual"`
	Stock         int                   `json:"stock"`
	MinStock      int                   `json:"minStock"`
	Kondisi       string                `json:"kondisi"`
	CategoryID    int64                 `json:"categoryId"`
	BrandID       int64                 `json:"brandId"`
	ProductTypeID string                `json:"productTypeId"`
	StockBatchID  *string               `json:"stockBatchId,omitempty"`
	Sizes         []ProductSizeResponse `json:"sizes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
	Meta PageResponse      `json:"meta"`
}
