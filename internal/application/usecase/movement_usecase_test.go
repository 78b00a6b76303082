package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

// recordingMovementRepo guarda el último movimiento recibido por Create/Update.
type recordingMovementRepo struct {
	existing *entity.Movement
	saved    *entity.Movement
}

func (r *recordingMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	v := *m
	r.saved = &v
	return nil
}

func (r *recordingMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if r.existing == nil || r.existing.ID != id {
		return nil, nil
	}
	v := *r.existing
	return &v, nil
}

func (r *recordingMovementRepo) List(_ context.Context, _, _ int) ([]*repository.MovementListItem, error) {
	return nil, nil
}

func (r *recordingMovementRepo) CountByProduct(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (r *recordingMovementRepo) Update(_ context.Context, m *entity.Movement) error {
	v := *m
	r.saved = &v
	return nil
}

func (r *recordingMovementRepo) Delete(_ context.Context, _ string) error { return nil }

// staticProductRepo resuelve productos por ID desde un mapa fijo.
type staticProductRepo struct {
	products map[string]*entity.Product
}

func (r *staticProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (r *staticProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *staticProductRepo) GetByCode(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *staticProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *staticProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

func (r *staticProductRepo) UpdateQuantity(_ context.Context, _ string, _ int64) error { return nil }

func (r *staticProductRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *staticProductRepo) Delete(_ context.Context, _ string) error { return nil }

// El alta manual toma el snapshot de nombre/código del producto referenciado.
func TestMovementCreate_TomaSnapshotDelProducto(t *testing.T) {
	movs := &recordingMovementRepo{}
	products := &staticProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "L-01", Name: "Leche"},
	}}
	uc := usecase.NewMovementUseCase(movs, products)

	out, err := uc.Create(context.Background(), dto.CreateMovementRequest{
		ProductID: "p1", Type: "in", Quantity: 4, UserID: "u1",
	})
	require.NoError(t, err)

	require.NotNil(t, movs.saved)
	assert.Equal(t, "Leche", *movs.saved.ProductName)
	assert.Equal(t, "L-01", *movs.saved.ProductCode)
	assert.Equal(t, "Leche", out.ProductName)
}

// Al corregir el producto de un movimiento, el snapshot nuevo llega al repo
// igual que a la respuesta.
func TestMovementUpdate_RefrescaSnapshotPersistido(t *testing.T) {
	oldID, oldName, oldCode := "p1", "Leche", "L-01"
	movs := &recordingMovementRepo{existing: &entity.Movement{
		ID: "m1", ProductID: &oldID, Type: "in", Quantity: 4,
		ProductName: &oldName, ProductCode: &oldCode,
	}}
	products := &staticProductRepo{products: map[string]*entity.Product{
		"p2": {ID: "p2", Code: "H-02", Name: "Harina"},
	}}
	uc := usecase.NewMovementUseCase(movs, products)

	newProduct := "p2"
	out, err := uc.Update(context.Background(), "m1", dto.UpdateMovementRequest{ProductID: &newProduct})
	require.NoError(t, err)

	require.NotNil(t, movs.saved)
	assert.Equal(t, "p2", *movs.saved.ProductID)
	assert.Equal(t, "Harina", *movs.saved.ProductName, "el snapshot persistido debe ser el nuevo")
	assert.Equal(t, "H-02", *movs.saved.ProductCode)
	assert.Equal(t, "Harina", out.ProductName, "la respuesta y lo persistido deben coincidir")
	assert.Equal(t, "H-02", out.ProductCode)
}

// Corregir hacia un producto inexistente → ErrNotFound sin persistir nada.
func TestMovementUpdate_ProductoInexistente(t *testing.T) {
	oldID := "p1"
	movs := &recordingMovementRepo{existing: &entity.Movement{ID: "m1", ProductID: &oldID, Type: "in", Quantity: 1}}
	uc := usecase.NewMovementUseCase(movs, &staticProductRepo{products: map[string]*entity.Product{}})

	fantasma := "no-existe"
	_, err := uc.Update(context.Background(), "m1", dto.UpdateMovementRequest{ProductID: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, movs.saved)
}
