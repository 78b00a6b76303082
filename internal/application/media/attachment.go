package media

import (
	"context"
	"strings"

	"github.com/tu-usuario/inventario-api/pkg/logger"
)

// BlobStore puerto del almacén de imágenes (content-addressable, externo).
type BlobStore interface {
	// Put sube bytes (o un data-URI ya codificado) y devuelve URL pública y public_id.
	Put(ctx context.Context, data []byte, isDataURI bool) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// Attachment resultado de resolver la imagen de un producto.
type Attachment struct {
	URL      *string
	PublicID *string
}

// Input imagen entrante: bytes de multipart, o un valor textual que puede ser
// data-URI o URL externa http(s). Como máximo uno de los dos viene poblado.
type Input struct {
	FileBytes []byte
	Value     string // data:... o http(s)://...
}

// Empty indica que no llegó imagen nueva.
func (in Input) Empty() bool {
	return len(in.FileBytes) == 0 && in.Value == ""
}

// Uploader resuelve imágenes de producto contra el blob store.
type Uploader struct {
	store BlobStore // nil si no hay credenciales configuradas
	log   *logger.Logger
}

// NewUploader construye el helper. store puede ser nil: en ese caso solo se
// aceptan URLs externas.
func NewUploader(store BlobStore, log *logger.Logger) *Uploader {
	return &Uploader{store: store, log: log}
}

// Resolve aplica la política de adjuntos:
//   - bytes o data-URI: subir primero; solo si la subida tuvo éxito se borra el
//     blob anterior (currentPublicID) y se adopta el nuevo par url/id. Un fallo
//     de subida se propaga antes de cualquier escritura en base de datos, así la
//     DB nunca referencia un blob que no se confirmó almacenado.
//   - URL http(s) externa: se adopta tal cual, sin subida y sin public_id (la
//     imagen no es propiedad del sistema).
//   - sin imagen: devuelve nil (el caller conserva lo que tenga).
//
// El borrado del blob anterior es best-effort: ya hay un reemplazo confirmado.
func (u *Uploader) Resolve(ctx context.Context, in Input, currentPublicID *string) (*Attachment, error) {
	switch {
	case len(in.FileBytes) > 0:
		return u.upload(ctx, in.FileBytes, false, currentPublicID)
	case strings.HasPrefix(in.Value, "data:"):
		return u.upload(ctx, []byte(in.Value), true, currentPublicID)
	case strings.HasPrefix(in.Value, "http://"), strings.HasPrefix(in.Value, "https://"):
		url := in.Value
		return &Attachment{URL: &url, PublicID: nil}, nil
	default:
		return nil, nil
	}
}

// Discard borra (best-effort) un blob recién subido cuyo registro en base de
// datos no llegó a confirmarse, para no dejar huérfanos en el blob store.
func (u *Uploader) Discard(ctx context.Context, att *Attachment) {
	if att == nil || att.PublicID == nil || *att.PublicID == "" || u.store == nil {
		return
	}
	if err := u.store.Delete(ctx, *att.PublicID); err != nil {
		u.log.Warn().Err(err).Str("public_id", *att.PublicID).Msg("no se pudo descartar la imagen huérfana")
	}
}

func (u *Uploader) upload(ctx context.Context, data []byte, isDataURI bool, currentPublicID *string) (*Attachment, error) {
	if u.store == nil {
		return nil, ErrNoStore
	}
	url, publicID, err := u.store.Put(ctx, data, isDataURI)
	if err != nil {
		return nil, err
	}
	if currentPublicID != nil && *currentPublicID != "" {
		if delErr := u.store.Delete(ctx, *currentPublicID); delErr != nil {
			u.log.Warn().Err(delErr).Str("public_id", *currentPublicID).Msg("no se pudo borrar la imagen anterior")
		}
	}
	return &Attachment{URL: &url, PublicID: &publicID}, nil
}
