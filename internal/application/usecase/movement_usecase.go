package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

// MovementUseCase superficie CRUD administrativa sobre el historial de
// movimientos. Crear/editar/borrar aquí NO toca cantidades de producto: las
// operaciones de stock pasan por el ledger, esto solo corrige el historial.
type MovementUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movements repository.MovementRepository, products repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{movements: movements, products: products}
}

// Create inserta un movimiento manual. Exige tipo válido, cantidad y usuario;
// el producto debe existir para tomar el snapshot de nombre/código.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || in.UserID == "" || !entity.ValidMovementType(in.Type) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	m := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   &p.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UserID:      &in.UserID,
		ProductName: &p.Name,
		ProductCode: &p.Code,
	}
	m.Date = time.Now()
	if in.Date != "" {
		d, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		m.Date = d
	}
	if err := uc.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMovementResponse(m, p.Name, p.Code, nil), nil
}

// List historial paginado, más reciente primero.
func (uc *MovementUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	rows, err := uc.movements.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, *toMovementResponse(&r.Movement, r.ProductName, r.ProductCode, r.UserName))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edición parcial de un movimiento existente.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		if !entity.ValidMovementType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		m.Type = *in.Type
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		m.Quantity = *in.Quantity
	}
	if in.UserID != nil {
		m.UserID = in.UserID
	}
	if in.Date != nil {
		d, err := time.Parse(time.RFC3339, *in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		m.Date = d
	}
	if in.ProductID != nil {
		p, err := uc.products.GetByID(ctx, *in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		m.ProductID = &p.ID
		m.ProductName = &p.Name
		m.ProductCode = &p.Code
	}
	if err := uc.movements.Update(ctx, m); err != nil {
		return nil, err
	}
	name, code := "", ""
	if m.ProductName != nil {
		name = *m.ProductName
	}
	if m.ProductCode != nil {
		code = *m.ProductCode
	}
	return toMovementResponse(m, name, code, nil), nil
}

// Delete borra un movimiento del historial.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.movements.Delete(ctx, id)
}

func toMovementResponse(m *entity.Movement, productName, productCode string, userName *string) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		ProductCode: productCode,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UserID:      m.UserID,
		UserName:    userName,
		Date:        m.Date,
	}
}
