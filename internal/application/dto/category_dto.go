package dto

import "time"

// CategoryRequest alta/edición de categoría.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría serializada.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
