package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/ledger"
	"github.com/tu-usuario/inventario-api/internal/application/media"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductUseCase casos de uso de producto: CRUD vía el ledger (toda mutación
// de producto deja rastro en movimientos) más operaciones de stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	ledger   *ledger.StockLedger
	uploader *media.Uploader
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, l *ledger.StockLedger, up *media.Uploader) *ProductUseCase {
	return &ProductUseCase{repo: repo, ledger: l, uploader: up}
}

// Create crea un producto; la imagen (si viene) se sube ANTES de abrir la
// transacción — si la subida falla no se escribe nada en base de datos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, img media.Input) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	att, err := uc.uploader.Resolve(ctx, img, nil)
	if err != nil {
		return nil, err
	}

	p := &entity.Product{
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitKind:    entity.NormalizeUnit(in.UnitKind),
		UnitPrice:   in.UnitPrice,
		StockMin:    in.StockMin,
		StockMax:    in.StockMax,
		EntryDate:   parseDate(in.EntryDate),
		CategoryID:  optional(in.CategoryID),
		SupplierID:  optional(in.SupplierID),
	}
	if att != nil {
		p.ImageURL = att.URL
		p.ImagePublicID = att.PublicID
	}

	if err := uc.ledger.CreateWithInitialStock(ctx, p, optional(in.UserID)); err != nil {
		// La fila no se insertó: el blob recién subido quedaría huérfano.
		uc.uploader.Discard(ctx, att)
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Update edita un producto (sobrescritura absoluta) y registra el movimiento
// 'edited' vía el ledger. Si llega imagen nueva: subir primero, borrar la
// anterior solo tras confirmar la subida.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, img media.Input) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	att, err := uc.uploader.Resolve(ctx, img, p.ImagePublicID)
	if err != nil {
		return nil, err
	}

	p.Code = strings.TrimSpace(in.Code)
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Quantity = in.Quantity
	p.UnitKind = entity.NormalizeUnit(in.UnitKind)
	p.UnitPrice = in.UnitPrice
	p.StockMin = in.StockMin
	p.StockMax = in.StockMax
	p.EntryDate = parseDate(in.EntryDate)
	p.CategoryID = optional(in.CategoryID)
	p.SupplierID = optional(in.SupplierID)
	if att != nil {
		p.ImageURL = att.URL
		p.ImagePublicID = att.PublicID
	}

	if err := uc.ledger.RecordEdit(ctx, p, optional(in.UserID)); err != nil {
		// La edición no se persistió: el blob recién subido quedaría huérfano.
		uc.uploader.Discard(ctx, att)
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina el producto con snapshot de auditoría; la imagen se limpia best-effort.
func (uc *ProductUseCase) Delete(ctx context.Context, id string, userID string) error {
	return uc.ledger.DeleteWithSnapshot(ctx, id, optional(userID))
}

// Consume registra una salida de stock (delta con bloqueo de fila).
func (uc *ProductUseCase) Consume(ctx context.Context, id string, in dto.StockOpRequest) (*dto.StockOpResponse, error) {
	res, err := uc.ledger.ApplyDelta(ctx, id, in.Quantity, entity.MovementTypeOut, optional(in.UserID))
	if err != nil {
		return nil, err
	}
	return &dto.StockOpResponse{Message: "consumo registrado", NewQuantity: res.NewQuantity, MovementID: res.MovementID}, nil
}

// Restock registra una entrada de stock.
func (uc *ProductUseCase) Restock(ctx context.Context, id string, in dto.StockOpRequest) (*dto.StockOpResponse, error) {
	res, err := uc.ledger.ApplyDelta(ctx, id, in.Quantity, entity.MovementTypeIn, optional(in.UserID))
	if err != nil {
		return nil, err
	}
	return &dto.StockOpResponse{Message: "ingreso registrado", NewQuantity: res.NewQuantity, MovementID: res.MovementID}, nil
}

// List lista productos; search es insensible a mayúsculas y acentos.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, NormalizeSearch(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// NormalizeSearch pasa el término a minúsculas y elimina marcas diacríticas
// ("Categoría" -> "categoria") para búsquedas consistentes con unaccent().
func NormalizeSearch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	var entryDate *string
	if p.EntryDate != nil {
		s := p.EntryDate.Format("2006-01-02")
		entryDate = &s
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		UnitKind:    p.UnitKind,
		UnitPrice:   p.UnitPrice,
		StockMin:    p.StockMin,
		StockMax:    p.StockMax,
		EntryDate:   entryDate,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// optional convierte "" en nil (columnas nullables).
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// parseDate interpreta YYYY-MM-DD; vacío o malformado -> nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
