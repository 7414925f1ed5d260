package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size es una talla de calzado (ej. "42", "42.5").
type Size struct {
	ID    string
	Label string
}

// Brand marca del producto. ID entero secuencial, como en el esquema legado.
type Brand struct {
	ID        int64
	Nama      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category categoría del producto (running, basket, casual...).
type Category struct {
	ID        int64
	Nama      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductType tipo de producto (high-top, low-top...).
type ProductType struct {
	ID        string
	Nama      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockBatch lote de compra: agrupa productos adquiridos juntos con su costo total.
type StockBatch struct {
	ID          string
	Nama        string
	TotalHarga  decimal.Decimal
	JumlahSepatu int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Customer cliente opcional de una venta.
type Customer struct {
	ID        string
	Nama      string
	Telepon   string
	Alamat    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
