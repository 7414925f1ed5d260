package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/catalog"
	"github.com/sepatuhub/pos-api/internal/application/dto"
)

// TaxonomyHandler marcas, categorías, tipos de producto y tallas.
type TaxonomyHandler struct {
	uc *catalog.TaxonomyUseCase
}

// NewTaxonomyHandler construye el handler de taxonomía.
func NewTaxonomyHandler(uc *catalog.TaxonomyUseCase) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc}
}

func parseID64(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "id numérico inválido",
		})
		return 0, false
	}
	return id, true
}

// --- Brands ---

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NamedRequest  true  "nama, image"
// @Success      201   {object}  dto.BrandResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *TaxonomyHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateBrand(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBrand godoc
// @Summary      Obtener marca
// @Tags         brands
// @Produce      json
// @Param        id   path      int  true  "brand id"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *TaxonomyHandler) GetBrand(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetBrand(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         brands
// @Produce      json
// @Param        search  query     string  false  "filtro por nombre"
// @Success      200     {object}  dto.BrandListResponse
// @Router       /api/brands [get]
func (h *TaxonomyHandler) ListBrands(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListBrands(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateBrand godoc
// @Summary      Renombrar marca
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "brand id"
// @Param        body  body      dto.NamedRequest  true  "nama, image"
// @Success      200   {object}  dto.BrandResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *TaxonomyHandler) UpdateBrand(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateBrand(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Eliminar marca (bloqueado si tiene productos)
// @Tags         brands
// @Produce      json
// @Param        id   path      int  true  "brand id"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *TaxonomyHandler) DeleteBrand(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteBrand(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "marca eliminada"})
}

// --- Categories ---

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NamedRequest  true  "nama"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "category id"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListCategories(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCategory godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "category id"
// @Param        body  body      dto.NamedRequest  true  "nama"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateCategory(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría (bloqueado si tiene productos)
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "category id"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := parseID64(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteCategory(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "categoría eliminada"})
}

// --- Product types ---

// CreateProductType godoc
// @Summary      Crear tipo de producto
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NamedRequest  true  "nama"
// @Success      201   {object}  dto.ProductTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-types [post]
func (h *TaxonomyHandler) CreateProductType(c *fiber.Ctx) error {
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateProductType(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProductTypes godoc
// @Summary      Listar tipos de producto
// @Tags         product-types
// @Produce      json
// @Success      200  {array}  dto.ProductTypeResponse
// @Router       /api/product-types [get]
func (h *TaxonomyHandler) ListProductTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListProductTypes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateProductType godoc
// @Summary      Renombrar tipo de producto
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "product type id"
// @Param        body  body      dto.NamedRequest  true  "nama"
// @Success      200   {object}  dto.ProductTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-types/{id} [put]
func (h *TaxonomyHandler) UpdateProductType(c *fiber.Ctx) error {
	var in dto.NamedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateProductType(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteProductType godoc
// @Summary      Eliminar tipo de producto (bloqueado si tiene productos)
// @Tags         product-types
// @Produce      json
// @Param        id   path      string  true  "product type id"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/product-types/{id} [delete]
func (h *TaxonomyHandler) DeleteProductType(c *fiber.Ctx) error {
	if err := h.uc.DeleteProductType(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tipo eliminado"})
}

// --- Sizes ---

// CreateSize godoc
// @Summary      Crear talla
// @Tags         sizes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SizeRequest  true  "label"
// @Success      201   {object}  dto.SizeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sizes [post]
func (h *TaxonomyHandler) CreateSize(c *fiber.Ctx) error {
	var in dto.SizeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateSize(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSizes godoc
// @Summary      Listar tallas
// @Tags         sizes
// @Produce      json
// @Success      200  {array}  dto.SizeResponse
// @Router       /api/sizes [get]
func (h *TaxonomyHandler) ListSizes(c *fiber.Ctx) error {
	out, err := h.uc.ListSizes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSize godoc
// @Summary      Eliminar talla (bloqueado si tiene variantes)
// @Tags         sizes
// @Produce      json
// @Param        id   path      string  true  "size id"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sizes/{id} [delete]
func (h *TaxonomyHandler) DeleteSize(c *fiber.Ctx) error {
	if err := h.uc.DeleteSize(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "talla eliminada"})
}
