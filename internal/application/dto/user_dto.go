package dto

import "time"

// RegisterRequest entrada para registro: username y password.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse salida de /auth/verify con el rol confirmado en base de datos.
type VerifyResponse struct {
	User UserResponse `json:"user"`
}

// UpdateRoleRequest entrada para cambiar el rol de un usuario (admin).
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=worker maintainer admin"`
}
