package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
	"github.com/sepatuhub/pos-api/pkg/jwt"
)

// UseCase registro y login de operadores. Provee el actorID que el resto del
// sistema usa para la auditoría.
type UseCase struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtIssuer string
	jwtExpMin int
}

// New construye el caso de uso de autenticación.
func New(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpMin int) *UseCase {
	return &UseCase{userRepo: userRepo, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, jwtExpMin: jwtExpMin}
}

// Register da de alta un operador con la contraseña hasheada (bcrypt).
// Rol por defecto: kasir.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrEmailAlreadyExists)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	role := req.Role
	if role == "" {
		role = entity.RoleKasir
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Nama:         req.Nama,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Nama: user.Nama, Email: user.Email, Role: user.Role}, nil
}

// Login valida credenciales y emite el token. Credenciales malas devuelven
// siempre ErrUnauthorized, sin distinguir email inexistente de contraseña
// incorrecta.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("comparar contraseña: %w", err)
	}
	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, uc.jwtIssuer, uc.jwtExpMin)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Nama: user.Nama, Email: user.Email, Role: user.Role},
	}, nil
}
