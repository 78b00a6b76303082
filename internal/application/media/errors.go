package media

import (
	"fmt"

	"github.com/tu-usuario/inventario-api/internal/domain"
)

// ErrNoStore se devuelve al intentar subir una imagen sin blob store configurado.
var ErrNoStore = fmt.Errorf("%w: blob store no configurado", domain.ErrUpload)
