package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (solo lo que el auth glue necesita).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
