package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleMesonero = "mesonero"
	RoleCajero   = "cajero"
	RoleCocina   = "cocina"
)

// Roles lista completa de roles, en el orden en que se muestran.
var Roles = []string{RoleAdmin, RoleMesonero, RoleCajero, RoleCocina}

// IsValidRole indica si r es uno de los cuatro roles del sistema.
func IsValidRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// User representa un empleado del restaurante con acceso a la API.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
