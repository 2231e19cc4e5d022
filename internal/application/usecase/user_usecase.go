package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// Límites de contraseña: mínimo en caracteres, máximo en bytes (tope de bcrypt).
const (
	MinPasswordLen   = 6
	MaxPasswordBytes = 72
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
	cost int
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{
		repo: repo,
		log:  log.With().Str("component", "users").Logger(),
		cost: bcrypt.DefaultCost,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un usuario con la contraseña hasheada (bcrypt).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.Invalid("email", "es requerido")
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.Invalid("role", "rol inválido")
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	activo := true
	if in.IsActive != nil {
		activo = *in.IsActive
	}
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		nombre = email
	}
	now := uc.now()
	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Nombre:       nombre,
		Role:         in.Role,
		IsActive:     activo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("usuario_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	return dto.FromUser(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// Update actualiza solo los campos enviados.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.Invalid("email", "es requerido")
		}
		if email != user.Email {
			existing, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if in.Nombre != nil {
		user.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.Invalid("role", "rol inválido")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := uc.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// List lista usuarios, opcionalmente por estado activo.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest) ([]dto.UserResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.UserFilter{IsActive: in.IsActive, Limit: in.Limit, Offset: in.Skip})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.FromUser(u))
	}
	return out, nil
}

// Delete elimina un usuario. Con pedidos registrados devuelve domain.ErrConflict.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("usuario_id", id).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return "", domain.Invalid("password", "debe tener al menos 6 caracteres")
	}
	if len(password) > MaxPasswordBytes {
		return "", domain.Invalid("password", "máximo 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.Invalid("password", "máximo 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
