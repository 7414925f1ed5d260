package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
)

// LedgerHandler operaciones de stock por talla.
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler construye el handler del ledger.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock de una variante por delta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustQuantityRequest  true  "productId, sizeId, delta"
// @Success      200   {object}  dto.ProductSizeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	ps, err := h.uc.AdjustQuantity(c.UserContext(), GetUserID(c), in.ProductID, in.SizeID, in.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductSizeResponse(ps))
}

// SetQuantity godoc
// @Summary      Sobrescribir la cantidad de una variante
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "product size id"
// @Param        body  body  dto.SetQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.ProductSizeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/sizes/{id} [put]
func (h *LedgerHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ps, err := h.uc.SetQuantity(c.UserContext(), GetUserID(c), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductSizeResponse(ps))
}

// CreateVariant godoc
// @Summary      Crear una variante (producto, talla)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSizeVariantRequest  true  "productId, sizeId, quantity"
// @Success      201   {object}  dto.ProductSizeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/sizes [post]
func (h *LedgerHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.CreateSizeVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	ps, err := h.uc.CreateSizeVariant(c.UserContext(), GetUserID(c), in.ProductID, in.SizeID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductSizeResponse(ps))
}

// DeleteVariant godoc
// @Summary      Eliminar una variante y recalcular el stock del producto
// @Tags         stock
// @Produce      json
// @Param        id   path      string  true  "product size id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/sizes/{id} [delete]
func (h *LedgerHandler) DeleteVariant(c *fiber.Ctx) error {
	if err := h.uc.DeleteSizeVariant(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "variante eliminada"})
}

// SyncAll godoc
// @Summary      Recalcular el agregado stock de todos los productos
// @Tags         stock
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/stock/sync [post]
func (h *LedgerHandler) SyncAll(c *fiber.Ctx) error {
	synced, err := h.uc.SyncAllStocks(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"synced": synced})
}

func toProductSizeResponse(ps *entity.ProductSize) dto.ProductSizeResponse {
	return dto.ProductSizeResponse{
		ID:        ps.ID,
		ProductID: ps.ProductID,
		SizeID:    ps.SizeID,
		SizeLabel: ps.SizeLabel,
		Quantity:  ps.Quantity,
	}
}
