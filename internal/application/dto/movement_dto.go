package dto

import "time"

// CreateMovementRequest alta manual de movimiento (superficie administrativa).
type CreateMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"` // RFC 3339, opcional (default: ahora)
}

// UpdateMovementRequest edición parcial de movimiento.
type UpdateMovementRequest struct {
	ProductID *string `json:"product_id"`
	Type      *string `json:"type"`
	Quantity  *int64  `json:"quantity"`
	UserID    *string `json:"user_id"`
	Date      *string `json:"date"`
}

// MovementResponse movimiento con nombre/código resueltos (snapshot si el
// producto ya no existe).
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   *string   `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductCode string    `json:"product_code"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	UserID      *string   `json:"user_id"`
	UserName    *string   `json:"user_name,omitempty"`
	Date        time.Time `json:"date"`
}

// MovementListResponse listado paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
