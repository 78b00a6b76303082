package entity

import "time"

// Roles conocidos. El campo es texto libre (extensible); Empleado es el
// default para usuarios nuevos.
const (
	RoleEmployee = "Empleado"
	RoleAdmin    = "Admin"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string // único
	PasswordHash string // bcrypt, nunca plano después de persistir
	Role         string
	CreatedAt    time.Time
}
