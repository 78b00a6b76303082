package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/application/media"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/pkg/logger"
)

// fakeStore blob store en memoria; Put puede fallar a demanda.
type fakeStore struct {
	putErr    error
	putCalls  int
	deleted   []string
	deleteErr error
}

func (s *fakeStore) Put(_ context.Context, _ []byte, _ bool) (string, string, error) {
	s.putCalls++
	if s.putErr != nil {
		return "", "", s.putErr
	}
	return "https://cdn.example.com/img.png", "productos/img", nil
}

func (s *fakeStore) Delete(_ context.Context, publicID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}

func newUploader(store media.BlobStore) *media.Uploader {
	return media.NewUploader(store, logger.Nop())
}

// Bytes de multipart → subir, adoptar url + public_id, borrar el blob anterior.
func TestResolve_BytesSubeYReemplaza(t *testing.T) {
	store := &fakeStore{}
	old := "productos/anterior"

	att, err := newUploader(store).Resolve(context.Background(), media.Input{FileBytes: []byte{0x89}}, &old)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, "https://cdn.example.com/img.png", *att.URL)
	assert.Equal(t, "productos/img", *att.PublicID)
	assert.Equal(t, []string{"productos/anterior"}, store.deleted, "el blob previo se borra tras confirmar la subida")
}

// Si la subida falla, el blob anterior queda intacto y el error se propaga.
func TestResolve_FalloDeSubidaNoBorraAnterior(t *testing.T) {
	store := &fakeStore{putErr: errors.New("503 del CDN")}
	old := "productos/anterior"

	att, err := newUploader(store).Resolve(context.Background(), media.Input{FileBytes: []byte{0x89}}, &old)
	require.Error(t, err)
	assert.Nil(t, att)
	assert.Empty(t, store.deleted, "nunca borrar el blob previo si no hay reemplazo")
}

// Un data-URI se trata como subida, no como URL externa.
func TestResolve_DataURISube(t *testing.T) {
	store := &fakeStore{}
	att, err := newUploader(store).Resolve(context.Background(), media.Input{Value: "data:image/png;base64,iVBOR"}, nil)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, 1, store.putCalls)
	assert.NotNil(t, att.PublicID)
}

// Una URL http(s) externa se adopta tal cual, sin subida y sin public_id.
func TestResolve_URLExternaSeAdoptaSinSubir(t *testing.T) {
	store := &fakeStore{}
	att, err := newUploader(store).Resolve(context.Background(), media.Input{Value: "https://externo.com/foto.jpg"}, nil)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, "https://externo.com/foto.jpg", *att.URL)
	assert.Nil(t, att.PublicID, "una imagen externa no es propiedad del sistema")
	assert.Zero(t, store.putCalls)
}

// Sin imagen entrante → nil, el caller conserva lo que tenga.
func TestResolve_SinImagenDevuelveNil(t *testing.T) {
	att, err := newUploader(&fakeStore{}).Resolve(context.Background(), media.Input{}, nil)
	require.NoError(t, err)
	assert.Nil(t, att)
}

// Subir sin blob store configurado → error de upload; una URL externa sí pasa.
func TestResolve_SinStoreSoloAceptaURLs(t *testing.T) {
	up := newUploader(nil)
	ctx := context.Background()

	_, err := up.Resolve(ctx, media.Input{FileBytes: []byte{1}}, nil)
	assert.ErrorIs(t, err, domain.ErrUpload)

	att, err := up.Resolve(ctx, media.Input{Value: "https://externo.com/foto.jpg"}, nil)
	require.NoError(t, err)
	require.NotNil(t, att)
}

// Discard limpia el blob huérfano; con attachment externo (sin public_id) no hace nada.
func TestDiscard_SoloBlobsPropios(t *testing.T) {
	store := &fakeStore{}
	up := newUploader(store)
	ctx := context.Background()

	id := "productos/huerfano"
	up.Discard(ctx, &media.Attachment{PublicID: &id})
	assert.Equal(t, []string{"productos/huerfano"}, store.deleted)

	store.deleted = nil
	url := "https://externo.com/foto.jpg"
	up.Discard(ctx, &media.Attachment{URL: &url})
	up.Discard(ctx, nil)
	assert.Empty(t, store.deleted)
}
