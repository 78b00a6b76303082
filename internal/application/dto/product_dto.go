package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Acepta JSON o multipart/form-data
// (el archivo de imagen viaja aparte, en el campo de formulario "image").
// ImageURL admite data-URI (se sube al blob store) o URL http(s) externa.
type CreateProductRequest struct {
	Code        string          `json:"code" form:"code"`
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Quantity    int64           `json:"quantity" form:"quantity"`
	UnitKind    string          `json:"unit_kind" form:"unit_kind"`
	UnitPrice   decimal.Decimal `json:"unit_price" form:"unit_price"`
	StockMin    int64           `json:"stock_min" form:"stock_min"`
	StockMax    int64           `json:"stock_max" form:"stock_max"`
	EntryDate   string          `json:"entry_date" form:"entry_date"` // YYYY-MM-DD, opcional
	CategoryID  string          `json:"category_id" form:"category_id"`
	SupplierID  string          `json:"supplier_id" form:"supplier_id"`
	ImageURL    string          `json:"image_url" form:"image_url"`
	UserID      string          `json:"user_id" form:"user_id"`
}

// UpdateProductRequest edición de producto: sobrescritura absoluta de campos
// (incluida la cantidad; ver política del ledger).
type UpdateProductRequest struct {
	Code        string          `json:"code" form:"code"`
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Quantity    int64           `json:"quantity" form:"quantity"`
	UnitKind    string          `json:"unit_kind" form:"unit_kind"`
	UnitPrice   decimal.Decimal `json:"unit_price" form:"unit_price"`
	StockMin    int64           `json:"stock_min" form:"stock_min"`
	StockMax    int64           `json:"stock_max" form:"stock_max"`
	EntryDate   string          `json:"entry_date" form:"entry_date"`
	CategoryID  string          `json:"category_id" form:"category_id"`
	SupplierID  string          `json:"supplier_id" form:"supplier_id"`
	ImageURL    string          `json:"image_url" form:"image_url"`
	UserID      string          `json:"user_id" form:"user_id"`
}

// ProductResponse producto serializado.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitKind    string          `json:"unit_kind"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockMin    int64           `json:"stock_min"`
	StockMax    int64           `json:"stock_max"`
	EntryDate   *string         `json:"entry_date,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockOpRequest consumo o reposición de stock.
type StockOpRequest struct {
	Quantity int64  `json:"quantity"`
	UserID   string `json:"user_id"`
}

// StockOpResponse resultado de una operación de stock.
type StockOpResponse struct {
	Message     string `json:"message"`
	NewQuantity int64  `json:"new_quantity"`
	MovementID  string `json:"movement_id"`
}
