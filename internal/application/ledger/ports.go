package ledger

import (
	"context"

	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el ledger de stock: o se aplican la
// cantidad y su movimiento juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// BlobDeleter borra blobs del almacén de imágenes. En el borrado de producto la
// limpieza es best-effort: los dos almacenes no comparten protocolo de commit.
type BlobDeleter interface {
	Delete(ctx context.Context, publicID string) error
}
