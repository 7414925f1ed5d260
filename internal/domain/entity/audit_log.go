package entity

import "time"

// Acciones auditables.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// QuantityChange snapshot {antes, después} de la cantidad afectada.
type QuantityChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// AuditLog entrada append-only del registro de auditoría. El core nunca la
// muta ni la borra; se escribe en la MISMA transacción que la mutación de
// stock que documenta. Operaciones sin actor (resync batch) no generan entrada.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Entity    string // "ProductSize", "Transaction", ...
	EntityID  string
	Changes   QuantityChange
	Detail    string
	CreatedAt time.Time
	// Denormalizado para lecturas.
	UserName string
}
