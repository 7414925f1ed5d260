package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/audit"
	"github.com/sepatuhub/pos-api/internal/application/dto"
)

// AuditHandler lectura del registro de auditoría.
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler de auditoría.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas de auditoría
// @Tags         audit
// @Produce      json
// @Param        entity  query     string  false  "filtro por entidad (Product, ProductSize, Transaction)"
// @Param        limit   query     int     false  "tamaño de página"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.AuditLogListResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), c.Query("entity"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
