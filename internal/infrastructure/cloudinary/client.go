package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tu-usuario/inventario-api/internal/application/media"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/pkg/config"
)

// Ensure Client implements media.BlobStore.
var _ media.BlobStore = (*Client)(nil)

// Client cliente REST del blob store de imágenes (Cloudinary).
// Usa el endpoint de upload firmado: la firma es SHA-1 de los parámetros
// ordenados más el api_secret.
type Client struct {
	http      *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

// New construye el cliente con las credenciales de configuración.
func New(cfg config.CloudinaryConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(fmt.Sprintf("https://api.cloudinary.com/v1_1/%s", cfg.CloudName)).
		SetTimeout(30 * time.Second)

	return &Client{
		http:      httpClient,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Put sube una imagen (bytes crudos o data-URI ya codificado) y devuelve URL y public_id.
// Cualquier fallo se reporta como domain.ErrUpload: el caller nunca debe escribir
// en base de datos una referencia a un blob que no se confirmó almacenado.
func (c *Client) Put(ctx context.Context, data []byte, isDataURI bool) (url, publicID string, err error) {
	file := string(data)
	if !isDataURI {
		mime := http.DetectContentType(data)
		file = fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(fmt.Sprintf("folder=%s&timestamp=%s", c.folder, ts))

	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"file":      file,
			"folder":    c.folder,
			"timestamp": ts,
			"api_key":   c.apiKey,
			"signature": signature,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/image/upload")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	if resp.IsError() || out.SecureURL == "" {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", "", fmt.Errorf("%w: %s", domain.ErrUpload, msg)
	}
	return out.SecureURL, out.PublicID, nil
}

// Delete borra un blob por public_id. El caller decide si el fallo es fatal
// (en borrado de producto es best-effort: se loguea y se descarta).
func (c *Client) Delete(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, ts))

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"public_id": publicID,
			"timestamp": ts,
			"api_key":   c.apiKey,
			"signature": signature,
		}).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("destroy blob %s: %w", publicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("destroy blob %s: %s", publicID, resp.Status())
	}
	return nil
}

func (c *Client) sign(paramsToSign string) string {
	sum := sha1.Sum([]byte(paramsToSign + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
