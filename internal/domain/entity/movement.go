package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn      = "in"      // entrada
	MovementTypeOut     = "out"     // salida
	MovementTypeEdited  = "edited"  // edición de producto (cantidad informativa)
	MovementTypeDeleted = "deleted" // baja de producto (cantidad 0, con snapshot)
)

// ValidMovementType indica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeEdited, MovementTypeDeleted:
		return true
	}
	return false
}

// Movement representa un registro inmutable del historial de stock.
// ProductID es nullable: el historial sobrevive al borrado del producto gracias
// a los campos snapshot ProductName/ProductCode, rellenados al eliminar.
type Movement struct {
	ID          string
	ProductID   *string
	Type        string
	Quantity    int64 // magnitud positiva para in/out; informativa para edited; 0 para deleted
	UserID      *string
	Date        time.Time
	ProductName *string // snapshot, solo en deleted
	ProductCode *string // snapshot, solo en deleted
}
