package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condición del producto. Se conservan los valores del esquema legado.
const (
	KondisiBaru      = "BARU"      // nuevo
	KondisiBekas     = "BEKAS"     // usado
	KondisiRekondisi = "REKONDISI" // reacondicionado
)

// Product representa un modelo de zapato del catálogo.
// Las columnas harga_beli/harga_jual/kondisi conservan los nombres del esquema
// legado (Prisma) para no romper interoperabilidad con los consumidores existentes.
// Stock es un campo DERIVADO: siempre se recalcula como la suma de las filas
// ProductSize dentro de la misma transacción que las muta; nunca es autoritativo.
type Product struct {
	ID            string
	Nama          string
	Deskripsi     string
	Image         string // URL opaca del host de medios; el core nunca la interpreta
	HargaBeli     decimal.Decimal
	HargaJual     decimal.Decimal
	Stock         int
	MinStock      int
	Kondisi       string
	CategoryID    int64
	BrandID       int64
	ProductTypeID string
	StockBatchID  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductSize es la unidad autoritativa de stock: un par (producto, talla)
// con su cantidad. Unicidad: a lo sumo una fila por (ProductID, SizeID).
type ProductSize struct {
	ID        string
	ProductID string
	SizeID    string
	Quantity  int
	// Campos denormalizados que los repositorios llenan vía JOIN (solo lectura).
	SizeLabel   string
	ProductName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
