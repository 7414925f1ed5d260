package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/alerting"
)

// NotificationHandler chequeo manual de alertas de stock.
type NotificationHandler struct {
	uc *alerting.UseCase
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *alerting.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// CheckAll godoc
// @Summary      Barrer todos los productos y disparar alertas pendientes
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  alerting.CheckResult
// @Router       /api/notifications/check [post]
func (h *NotificationHandler) CheckAll(c *fiber.Ctx) error {
	result, err := h.uc.CheckAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}
