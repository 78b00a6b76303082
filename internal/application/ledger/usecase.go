package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
	"github.com/tu-usuario/inventario-api/pkg/logger"
)

// StockLedger mantiene Product.Quantity y el historial de Movement como un par
// consistente bajo concurrencia: cada operación de stock bloquea la fila del
// producto (SELECT FOR UPDATE) dentro de una transacción. Operaciones sobre el
// mismo producto se serializan; sobre productos distintos avanzan en paralelo.
type StockLedger struct {
	tx    TxRunner
	blobs BlobDeleter // puede ser nil si no hay blob store configurado
	log   *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(tx TxRunner, blobs BlobDeleter, log *logger.Logger) *StockLedger {
	return &StockLedger{tx: tx, blobs: blobs, log: log}
}

// DeltaResult resultado de ApplyDelta.
type DeltaResult struct {
	NewQuantity int64
	MovementID  string
}

// withLockedProduct abre una transacción, bloquea la fila del producto y ejecuta fn.
// Abstrae el SELECT FOR UPDATE para que la lógica del ledger no dependa de la
// sintaxis de bloqueo del almacén.
func (l *StockLedger) withLockedProduct(ctx context.Context, productID string, fn func(
	p *entity.Product,
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	return l.tx.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		p, err := products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return fn(p, products, movements)
	})
}

// ApplyDelta aplica un delta de stock con auditoría: entrada suma, salida resta.
// Si una salida dejaría la cantidad negativa, la transacción se aborta con
// ErrInsufficientStock sin mutar ninguna fila. Devuelve la nueva cantidad y el
// id del movimiento insertado.
func (l *StockLedger) ApplyDelta(ctx context.Context, productID string, magnitude int64, direction string, userID *string) (*DeltaResult, error) {
	if magnitude <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if direction != entity.MovementTypeIn && direction != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}

	var res DeltaResult
	err := l.withLockedProduct(ctx, productID, func(
		p *entity.Product,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		newQty := p.Quantity + magnitude
		if direction == entity.MovementTypeOut {
			newQty = p.Quantity - magnitude
			if newQty < 0 {
				return domain.ErrInsufficientStock
			}
		}
		if err := products.UpdateQuantity(ctx, productID, newQty); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: &p.ID,
			Type:      direction,
			Quantity:  magnitude,
			UserID:    userID,
			Date:      time.Now(),
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		res = DeltaResult{NewQuantity: newQty, MovementID: mov.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateWithInitialStock inserta el producto y, si trae cantidad inicial > 0, el
// movimiento de entrada emparejado, dentro de la misma transacción: un producto
// nunca es observable con cantidad distinta de cero y sin movimiento.
func (l *StockLedger) CreateWithInitialStock(ctx context.Context, p *entity.Product, userID *string) error {
	if p.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	return l.tx.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		if p.Quantity > 0 {
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: &p.ID,
				Type:      entity.MovementTypeIn,
				Quantity:  p.Quantity,
				UserID:    userID,
				Date:      now,
			}
			return movements.Create(ctx, mov)
		}
		return nil
	})
}

// RecordEdit sobrescribe los campos del producto (la cantidad se fija en absoluto,
// sin delta ni bloqueo de fila: una edición concurrente con un consumo puede pisar
// el delta — comportamiento heredado, la ambigüedad de intención se conserva) y
// registra un movimiento 'edited' con la cantidad enviada como valor informativo,
// todo en una transacción.
func (l *StockLedger) RecordEdit(ctx context.Context, p *entity.Product, userID *string) error {
	p.UpdatedAt = time.Now()
	return l.tx.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: &p.ID,
			Type:      entity.MovementTypeEdited,
			Quantity:  p.Quantity,
			UserID:    userID,
			Date:      p.UpdatedAt,
		}
		return movements.Create(ctx, mov)
	})
}

// DeleteWithSnapshot registra un movimiento 'deleted' con el nombre y código
// denormalizados (el snapshot se captura antes de que la fila desaparezca) y
// borra el producto, en una transacción. Después del commit intenta borrar el
// blob de imagen: el fallo se loguea y se descarta, nunca revierte el borrado.
func (l *StockLedger) DeleteWithSnapshot(ctx context.Context, productID string, userID *string) error {
	var imagePublicID string
	err := l.withLockedProduct(ctx, productID, func(
		p *entity.Product,
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		if p.ImagePublicID != nil {
			imagePublicID = *p.ImagePublicID
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   &p.ID,
			Type:        entity.MovementTypeDeleted,
			Quantity:    0,
			UserID:      userID,
			Date:        time.Now(),
			ProductName: &p.Name,
			ProductCode: &p.Code,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		return products.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	if imagePublicID != "" && l.blobs != nil {
		if err := l.blobs.Delete(ctx, imagePublicID); err != nil {
			l.log.Warn().Err(err).Str("public_id", imagePublicID).Msg("no se pudo borrar la imagen del blob store")
		}
	}
	return nil
}
