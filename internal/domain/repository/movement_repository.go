package repository

import (
	"context"

	"github.com/tu-usuario/inventario-api/internal/domain/entity"
)

// MovementListItem movimiento resuelto para listados: si el producto ya no
// existe, el nombre/código provienen del snapshot del propio movimiento.
type MovementListItem struct {
	Movement    entity.Movement
	ProductName string
	ProductCode string
	UserName    *string
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
// El ledger solo inserta; Update/Delete existen para la superficie CRUD
// administrativa y nunca se invocan desde operaciones de stock.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados por fecha DESC, id DESC (paginación determinista).
	List(ctx context.Context, limit, offset int) ([]*MovementListItem, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error
}
