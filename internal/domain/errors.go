package domain

import (
	"errors"
	"fmt"
)

// Errores centinela de dominio (sin dependencias externas).
// Los tipos de abajo envuelven estos centinelas para que errors.Is siga funcionando.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDependencyInUse    = errors.New("recurso referenciado por otros registros")
)

// NotFoundError indica que un id no corresponde a ninguna fila.
type NotFoundError struct {
	Entity string // "Product", "ProductSize", "Transaction", ...
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError indica una violación de unicidad (nombre duplicado, par producto-talla repetido).
type ConflictError struct {
	Entity string
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Detail, ErrConflict)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError indica un valor de entrada malformado o fuera de rango.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s: %s: %v", e.Field, e.Detail, ErrInvalidInput)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError lleva el contexto completo del faltante para que el
// caller pueda construir un mensaje preciso (producto, talla, disponible vs pedido).
type InsufficientStockError struct {
	ProductName string
	SizeLabel   string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%v: producto %q talla %q (available=%d, requested=%d)",
		ErrInsufficientStock, e.ProductName, e.SizeLabel, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DependencyInUseError indica un delete bloqueado porque existen filas que referencian el recurso.
type DependencyInUseError struct {
	Entity     string
	ID         string
	References int // cantidad de filas que lo referencian
}

func (e *DependencyInUseError) Error() string {
	return fmt.Sprintf("%s %s tiene %d referencias: %v", e.Entity, e.ID, e.References, ErrDependencyInUse)
}

func (e *DependencyInUseError) Unwrap() error { return ErrDependencyInUse }
