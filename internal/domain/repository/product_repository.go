package repository

import (
	"context"

	"github.com/tu-usuario/inventario-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción; serializa operaciones sobre el mismo producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity actualiza solo la cantidad (usado por el ledger de stock).
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
