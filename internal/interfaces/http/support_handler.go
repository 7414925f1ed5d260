package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/catalog"
	"github.com/sepatuhub/pos-api/internal/application/dto"
)

// SupportHandler lotes de compra y clientes.
type SupportHandler struct {
	uc *catalog.SupportUseCase
}

// NewSupportHandler construye el handler de soporte.
func NewSupportHandler(uc *catalog.SupportUseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// CreateStockBatch godoc
// @Summary      Crear lote de compra
// @Tags         stock-batches
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockBatchRequest  true  "nama, totalHarga, jumlahSepatu"
// @Success      201   {object}  dto.StockBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-batches [post]
func (h *SupportHandler) CreateStockBatch(c *fiber.Ctx) error {
	var in dto.StockBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateStockBatch(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStockBatch godoc
// @Summary      Obtener lote de compra
// @Tags         stock-batches
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {object}  dto.StockBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-batches/{id} [get]
func (h *SupportHandler) GetStockBatch(c *fiber.Ctx) error {
	out, err := h.uc.GetStockBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStockBatches godoc
// @Summary      Listar lotes de compra
// @Tags         stock-batches
// @Produce      json
// @Success      200  {array}  dto.StockBatchResponse
// @Router       /api/stock-batches [get]
func (h *SupportHandler) ListStockBatches(c *fiber.Ctx) error {
	out, err := h.uc.ListStockBatches(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStockBatch godoc
// @Summary      Actualizar lote de compra
// @Tags         stock-batches
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "batch id"
// @Param        body  body      dto.StockBatchRequest  true  "campos"
// @Success      200   {object}  dto.StockBatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-batches/{id} [put]
func (h *SupportHandler) UpdateStockBatch(c *fiber.Ctx) error {
	var in dto.StockBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateStockBatch(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteStockBatch godoc
// @Summary      Eliminar lote de compra
// @Tags         stock-batches
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-batches/{id} [delete]
func (h *SupportHandler) DeleteStockBatch(c *fiber.Ctx) error {
	if err := h.uc.DeleteStockBatch(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote eliminado"})
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "nama, telepon, alamat"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *SupportHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateCustomer(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCustomer godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "customer id"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *SupportHandler) GetCustomer(c *fiber.Ctx) error {
	out, err := h.uc.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Param        search  query     string  false  "filtro por nombre o teléfono"
// @Success      200     {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *SupportHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListCustomers(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCustomer godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "customer id"
// @Param        body  body      dto.CustomerRequest  true  "campos"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *SupportHandler) UpdateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateCustomer(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCustomer godoc
// @Summary      Eliminar cliente (las ventas lo conservan como NULL)
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "customer id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *SupportHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.uc.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente eliminado"})
}
