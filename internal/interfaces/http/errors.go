package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/pkg/logger"
	"github.com/sepatuhub/pos-api/pkg/validator"
)

// localLogger clave de Locals donde el router deja el logger de la app para
// que writeError pueda registrar los errores no mapeados.
const localLogger = "logger"

const internalMessage = "error interno"

// writeError traduce errores de dominio a respuestas HTTP. Los tipos con
// contexto (faltante de stock, dependencias) exponen sus campos en Details
// para que el front arme mensajes precisos.
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: err.Error(),
			Details: map[string]any{
				"product":   insufficient.ProductName,
				"size":      insufficient.SizeLabel,
				"available": insufficient.Available,
				"requested": insufficient.Requested,
			},
		})
	}

	var inUse *domain.DependencyInUseError
	if errors.As(err, &inUse) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DEPENDENCY_IN_USE",
			Message: err.Error(),
			Details: map[string]any{
				"entity":     inUse.Entity,
				"id":         inUse.ID,
				"references": inUse.References,
			},
		})
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
			Details: map[string]any{"entity": notFound.Entity, "id": notFound.ID},
		})
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: err.Error(),
			Details: map[string]any{"field": validation.Field},
		})
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "EMAIL_EXISTS", Message: "el email ya está registrado",
		})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "credenciales inválidas",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "acceso denegado",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrDependencyInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	}

	// Error no mapeado: el detalle (drivers, hosts, SQL) va al log, nunca al
	// cliente.
	if log, ok := c.Locals(localLogger).(*logger.Logger); ok && log != nil {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no mapeado")
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: internalMessage,
	})
}

// invalidBody respuesta estándar para cuerpos no parseables.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "cuerpo inválido",
	})
}

// validateBody corre las tags validate del DTO y responde 400 con el detalle
// por campo si algo falla. Devuelve true si el request puede continuar.
func validateBody(c *fiber.Ctx, body any) (ok bool) {
	fails := validator.ValidateStruct(body)
	if len(fails) == 0 {
		return true
	}
	details := map[string]any{}
	for _, f := range fails {
		msg := f.Tag
		if f.Param != "" {
			msg += "=" + f.Param
		}
		details[f.FailedField] = msg
	}
	_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "validación fallida", Details: details,
	})
	return false
}
