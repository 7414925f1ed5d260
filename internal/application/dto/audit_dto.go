package dto

import (
	"time"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
)

// AuditLogResponse entrada de auditoría para lecturas.
type AuditLogResponse struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	UserName  string                `json:"userName,omitempty"`
	Action    string                `json:"action"`
	Entity    string                `json:"entity"`
	EntityID  string                `json:"entityId"`
	Changes   entity.QuantityChange `json:"changes"`
	Detail    string                `json:"detail,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// AuditLogListResponse listado paginado de auditoría.
type AuditLogListResponse struct {
	Data []AuditLogResponse `json:"data"`
	Meta PageResponse       `json:"meta"`
}
