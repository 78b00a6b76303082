package dto

import "time"

// SupplierRequest alta/edición de proveedor. Solo Name es obligatorio.
type SupplierRequest struct {
	Name        string  `json:"name"`
	RFC         *string `json:"rfc"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	ContactName *string `json:"contact_name"`
}

// SupplierResponse proveedor serializado.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RFC         *string   `json:"rfc,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	ContactName *string   `json:"contact_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
