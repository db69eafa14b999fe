package entity

import "time"

// Roles válidos para User.
const (
	RoleWorker     = "worker"
	RoleMaintainer = "maintainer"
	RoleAdmin      = "admin"
)

var roleLevels = map[string]int{
	RoleWorker:     0,
	RoleMaintainer: 1,
	RoleAdmin:      2,
}

// RoleLevel devuelve el nivel jerárquico del rol; roles desconocidos cuentan como worker.
func RoleLevel(role string) int {
	return roleLevels[role]
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

// User representa un operador del sistema de layouts.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // worker, maintainer, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
