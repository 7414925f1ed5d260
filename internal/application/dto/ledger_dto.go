package dto

// AdjustQuantityRequest ajuste relativo de stock de una variante:
// delta positivo = reposición/devolución, negativo = salida.
type AdjustQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	SizeID    string `json:"sizeId" validate:"required"`
	Delta     int    `json:"delta" validate:"required"`
}

// SetQuantityRequest corrección manual: sobreescribe la cantidad de la variante.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CreateSizeVariantRequest alta de una variante (producto, talla).
type CreateSizeVariantRequest struct {
	ProductID string `json:"productId" validate:"required"`
	SizeID    string `json:"sizeId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}
