package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta propuesta. Los precios NO se aceptan del
// cliente: se snapshotean del producto en la liquidación.
type SaleItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	SizeID    string          `json:"sizeId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Diskon    decimal.Decimal `json:"diskon"`
}

// CreateSaleRequest venta propuesta.
type CreateSaleRequest struct {
	CustomerID    *string           `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=CASH TRANSFER QRIS"`
	Diskon        decimal.Decimal   `json:"diskon"`
	Catatan       string            `json:"catatan"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSaleRequest edición de una venta liquidada: reversión y reaplicación
// completa de items en una sola unidad atómica.
type UpdateSaleRequest struct {
	CustomerID    *string           `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=CASH TRANSFER QRIS"`
	Diskon        decimal.Decimal   `json:"diskon"`
	Catatan       string            `json:"catatan"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea liquidada, con los snapshots de precio.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	SizeID      string          `json:"sizeId"`
	SizeLabel   string          `json:"sizeLabel,omitempty"`
	Quantity    int             `json:"quantity"`
	HargaJual   decimal.Decimal `json:"hargaJual"`
	HargaBeli   decimal.Decimal `json:"hargaBeli"`
	Diskon      decimal.Decimal `json:"diskon"`
}

// SaleResponse venta liquidada.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    *string            `json:"customerId,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	UserID        string             `json:"userId"`
	UserName      string             `json:"userName,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	Diskon        decimal.Decimal    `json:"diskon"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	Profit        decimal.Decimal    `json:"profit"`
	Catatan       string             `json:"catatan,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Data []SaleResponse `json:"data"`
	Meta PageResponse   `json:"meta"`
}
