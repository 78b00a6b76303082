package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/ledger"
	"github.com/tu-usuario/inventario-api/internal/application/media"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
	"github.com/tu-usuario/inventario-api/pkg/logger"
)

// brokenTxRunner toda transacción falla; simula una BD caída a mitad de operación.
type brokenTxRunner struct{}

func (brokenTxRunner) Run(_ context.Context, _ func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	return errors.New("begin transaction: conexión rechazada")
}

// recordingBlobStore sube con un public_id fijo y registra borrados.
type recordingBlobStore struct {
	deleted []string
}

func (s *recordingBlobStore) Put(_ context.Context, _ []byte, _ bool) (string, string, error) {
	return "https://cdn.example.com/nuevo.png", "productos/nuevo", nil
}

func (s *recordingBlobStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

// Si la edición falla después de subir la imagen nueva, el blob recién subido
// se descarta, igual que en el alta.
func TestProductUpdate_EdicionFallidaDescartaBlobNuevo(t *testing.T) {
	store := &recordingBlobStore{}
	uploader := media.NewUploader(store, logger.Nop())
	l := ledger.NewStockLedger(brokenTxRunner{}, nil, logger.Nop())
	repo := &staticProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "L-01", Name: "Leche", Quantity: 3},
	}}
	uc := usecase.NewProductUseCase(repo, l, uploader)

	_, err := uc.Update(context.Background(), "p1",
		dto.UpdateProductRequest{Code: "L-01", Name: "Leche"},
		media.Input{FileBytes: []byte{0x89}})
	require.Error(t, err)

	assert.Contains(t, store.deleted, "productos/nuevo", "el blob huérfano debe descartarse")
}

// El mismo fallo en el alta también limpia el blob recién subido.
func TestProductCreate_AltaFallidaDescartaBlobNuevo(t *testing.T) {
	store := &recordingBlobStore{}
	uploader := media.NewUploader(store, logger.Nop())
	l := ledger.NewStockLedger(brokenTxRunner{}, nil, logger.Nop())
	uc := usecase.NewProductUseCase(&staticProductRepo{}, l, uploader)

	_, err := uc.Create(context.Background(),
		dto.CreateProductRequest{Code: "L-01", Name: "Leche"},
		media.Input{FileBytes: []byte{0x89}})
	require.Error(t, err)

	assert.Equal(t, []string{"productos/nuevo"}, store.deleted)
}

// La búsqueda normaliza mayúsculas y marcas diacríticas, como unaccent() en BD.
func TestNormalizeSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Leche", "leche"},
		{"CATEGORÍA", "categoria"},
		{"azúcar", "azucar"},
		{"  Café Ñoño  ", "cafe nono"},
		{"jalapeño über", "jalapeno uber"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, usecase.NormalizeSearch(c.in), "entrada: %q", c.in)
	}
}
