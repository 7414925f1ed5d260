package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleKasir = "kasir"
)

// User operador del sistema. Solo lo mínimo que el core necesita: identidad
// para atribución de auditoría y credenciales para el login.
type User struct {
	ID           string
	Nama         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
