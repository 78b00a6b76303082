package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para Product.
const (
	UnitKilogram = "Kilogramo"
	UnitLiter    = "Litro"
	UnitPiece    = "Pieza"
)

// NormalizeUnit devuelve la unidad si es válida; si no, Pieza.
func NormalizeUnit(unit string) string {
	switch unit {
	case UnitKilogram, UnitLiter, UnitPiece:
		return unit
	default:
		return UnitPiece
	}
}

// Product representa un producto del inventario.
// Quantity solo cambia vía el ledger de stock (movimientos con bloqueo de fila);
// la edición directa la sobreescribe de forma absoluta (comportamiento heredado).
type Product struct {
	ID            string
	Code          string // código único, asignado por el usuario
	Name          string
	Description   string
	Quantity      int64 // invariante: >= 0
	UnitKind      string
	UnitPrice     decimal.Decimal
	StockMin      int64
	StockMax      int64
	EntryDate     *time.Time
	CategoryID    *string // nullable; borrado de categoría restringido mientras exista
	SupplierID    *string // nullable; borrado de proveedor restringido mientras exista
	ImageURL      *string
	ImagePublicID *string // id opaco en el blob store; vacío si la imagen es externa
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
