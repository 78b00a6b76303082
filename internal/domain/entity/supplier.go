package entity

import "time"

// Supplier representa un proveedor.
type Supplier struct {
	ID          string
	Name        string
	RFC         *string
	Phone       *string
	Email       *string
	Address     *string
	ContactName *string
	CreatedAt   time.Time
}
