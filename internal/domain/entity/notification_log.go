package entity

import "time"

// Estados de alerta de stock.
const (
	StockStatusLow = "LOW_STOCK"
	StockStatusOut = "OUT_OF_STOCK"
)

// NotificationLog marcador de deduplicación de alertas por producto: mientras
// exista una fila con el estado dado no se vuelve a notificar. Se limpia
// cuando el stock vuelve por encima de min_stock.
type NotificationLog struct {
	ID        string
	ProductID string
	Status    string
	CreatedAt time.Time
}
