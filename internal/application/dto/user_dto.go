package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Nombre   string `json:"nombre" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin mesonero cajero cocina"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest entrada para actualizar un usuario; solo se cambian los campos enviados.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Nombre   *string `json:"nombre" validate:"omitempty,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin mesonero cajero cocina"`
	IsActive *bool   `json:"is_active"`
}

// UserListRequest filtros del listado de usuarios.
type UserListRequest struct {
	PageRequest
	IsActive *bool `query:"is_active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login. Acepta JSON {email,password} o el formulario OAuth2 (username, password).
type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
}
