package cloudinary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/pkg/config"
)

func testClient(serverURL string) *Client {
	c := New(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "productos",
	})
	c.http.SetBaseURL(serverURL)
	return c
}

// Una subida exitosa devuelve la URL segura y el public_id del servidor.
func TestPut_SubidaExitosa(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/image/upload", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k, v := range r.PostForm {
			gotForm[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/img.png","public_id":"productos/img"}`))
	}))
	defer srv.Close()

	url, publicID, err := testClient(srv.URL).Put(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, false)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/img.png", url)
	assert.Equal(t, "productos/img", publicID)

	assert.Equal(t, "productos", gotForm["folder"])
	assert.Equal(t, "key", gotForm["api_key"])
	assert.NotEmpty(t, gotForm["signature"], "la petición debe ir firmada")
	assert.Contains(t, gotForm["file"], "data:", "los bytes crudos se codifican como data-URI")
}

// Un data-URI ya codificado se envía tal cual, sin recodificar.
func TestPut_DataURISinRecodificar(t *testing.T) {
	const dataURI = "data:image/png;base64,iVBORw0KGgo="
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, dataURI, r.PostForm.Get("file"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/i.png","public_id":"productos/i"}`))
	}))
	defer srv.Close()

	_, _, err := testClient(srv.URL).Put(context.Background(), []byte(dataURI), true)
	require.NoError(t, err)
}

// Errores del servidor se reportan como domain.ErrUpload con el mensaje remoto.
func TestPut_ErrorRemoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	}))
	defer srv.Close()

	_, _, err := testClient(srv.URL).Put(context.Background(), []byte{1, 2, 3}, false)
	require.ErrorIs(t, err, domain.ErrUpload)
	assert.Contains(t, err.Error(), "Invalid signature")
}

// La firma es SHA-1 hex de los parámetros ordenados más el api_secret.
func TestSign(t *testing.T) {
	c := testClient("http://unused")
	// sha1("folder=productos&timestamp=100" + "secret")
	assert.Equal(t, "7750f4f153fe26ae5a0961cdb5972e74d9a2fe8f", c.sign("folder=productos&timestamp=100"))
}
