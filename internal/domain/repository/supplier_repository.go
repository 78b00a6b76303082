package repository

import (
	"context"

	"github.com/tu-usuario/inventario-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// Delete devuelve domain.ErrConflict si hay productos referenciando el proveedor.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
