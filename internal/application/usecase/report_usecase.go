package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

const (
	defaultReportDays  = 30
	defaultReportLimit = 5
	maxReportLimit     = 100
)

// csvHeader columnas del export de movimientos, en este orden.
const csvHeader = "fecha,tipo,codigo,producto,cantidad,precio_unitario,total,categoria,usuario"

// ReportUseCase reportes de solo lectura sobre inventario y movimientos.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// resolveWindow resuelve la ventana de fechas: default últimos 30 días; `from`
// arranca a las 00:00:00 y `to` cierra a las 23:59:59 del día indicado.
func resolveWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	from := to.AddDate(0, 0, -defaultReportDays).Truncate(24 * time.Hour)
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, now.Location())

	if fromStr != "" {
		d, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		from = d
	}
	if toStr != "" {
		d, err := time.ParseInLocation("2006-01-02", toStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		to = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, now.Location())
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}

// sanitizeLimit default 5, acotado a 1..100.
func sanitizeLimit(limit int) int {
	if limit <= 0 {
		return defaultReportLimit
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}

func toDateRange(from, to time.Time) dto.DateRange {
	return dto.DateRange{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
}

func movementFilter(in dto.ReportWindowRequest) (repository.MovementFilter, error) {
	from, to, err := resolveWindow(in.From, in.To)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	f := repository.MovementFilter{From: from, To: to}
	if in.UserID != "" {
		f.UserID = &in.UserID
	}
	if in.Type != "" {
		if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
			return repository.MovementFilter{}, domain.ErrInvalidInput
		}
		f.Type = &in.Type
	}
	return f, nil
}

// TotalProducts conteo global de productos.
func (uc *ReportUseCase) TotalProducts(ctx context.Context) (*dto.TotalProductsResponse, error) {
	n, err := uc.repo.TotalProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TotalProductsResponse{TotalProducts: n}, nil
}

// TotalUnits unidades totales en inventario.
func (uc *ReportUseCase) TotalUnits(ctx context.Context) (*dto.TotalUnitsResponse, error) {
	n, err := uc.repo.TotalUnits(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TotalUnitsResponse{TotalUnits: n}, nil
}

// TotalValue valor monetario del inventario (sum cantidad * precio).
func (uc *ReportUseCase) TotalValue(ctx context.Context) (*dto.TotalValueResponse, error) {
	v, err := uc.repo.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TotalValueResponse{TotalValue: v}, nil
}

// TopStock productos con mayor existencia.
func (uc *ReportUseCase) TopStock(ctx context.Context, limit int) ([]dto.StockRankItem, error) {
	return uc.stockRanking(ctx, false, limit)
}

// BottomStock productos con menor existencia.
func (uc *ReportUseCase) BottomStock(ctx context.Context, limit int) ([]dto.StockRankItem, error) {
	return uc.stockRanking(ctx, true, limit)
}

func (uc *ReportUseCase) stockRanking(ctx context.Context, ascending bool, limit int) ([]dto.StockRankItem, error) {
	rows, err := uc.repo.StockRanking(ctx, ascending, sanitizeLimit(limit))
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockRankItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockRankItem{ProductID: r.ProductID, Name: r.Name, Quantity: r.Quantity})
	}
	return items, nil
}

// LowStock productos en o por debajo de su stock mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	rows, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItem{ProductID: r.ProductID, Name: r.Name, Quantity: r.Quantity, StockMin: r.StockMin})
	}
	return items, nil
}

// KPIs indicadores agregados de la ventana.
func (uc *ReportUseCase) KPIs(ctx context.Context, in dto.ReportWindowRequest) (*dto.KPIResponse, error) {
	from, to, err := resolveWindow(in.From, in.To)
	if err != nil {
		return nil, err
	}
	k, err := uc.repo.KPIs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.KPIResponse{
		Range:          toDateRange(from, to),
		InventoryValue: k.InventoryValue,
		AlertCount:     k.AlertCount,
		InboundUnits:   k.InboundUnits,
		OutboundUnits:  k.OutboundUnits,
		OutboundCost:   k.OutboundCost,
	}, nil
}

// DailySeries serie diaria de entradas/salidas.
func (uc *ReportUseCase) DailySeries(ctx context.Context, in dto.ReportWindowRequest) (*dto.DailySeriesResponse, error) {
	f, err := movementFilter(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.DailySeries(ctx, f)
	if err != nil {
		return nil, err
	}
	series := make([]dto.DailySeriesItem, 0, len(rows))
	for _, r := range rows {
		series = append(series, dto.DailySeriesItem{
			Day:      r.Day.Format("2006-01-02"),
			Inbound:  r.Inbound,
			Outbound: r.Outbound,
		})
	}
	return &dto.DailySeriesResponse{Range: toDateRange(f.From, f.To), Series: series}, nil
}

// TopConsumption productos con más salidas en la ventana.
func (uc *ReportUseCase) TopConsumption(ctx context.Context, in dto.ReportWindowRequest) (*dto.TopConsumptionResponse, error) {
	from, to, err := resolveWindow(in.From, in.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.TopConsumption(ctx, from, to, sanitizeLimit(in.Limit))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumptionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ConsumptionItem{ProductID: r.ProductID, Name: r.Name, Total: r.Total})
	}
	return &dto.TopConsumptionResponse{Range: toDateRange(from, to), Items: items}, nil
}

// ConsumptionByCategory consumo agrupado por categoría.
func (uc *ReportUseCase) ConsumptionByCategory(ctx context.Context, in dto.ReportWindowRequest) (*dto.CategoryConsumptionResponse, error) {
	from, to, err := resolveWindow(in.From, in.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ConsumptionByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryConsumptionItem, 0, len(rows))
	for _, r := range rows {
		name := "Sin categoría"
		if r.Category != nil {
			name = *r.Category
		}
		items = append(items, dto.CategoryConsumptionItem{CategoryID: r.CategoryID, Category: name, Total: r.Total})
	}
	return &dto.CategoryConsumptionResponse{Range: toDateRange(from, to), Items: items}, nil
}

// MovementsByUser entradas/salidas acumuladas por usuario.
func (uc *ReportUseCase) MovementsByUser(ctx context.Context, in dto.ReportWindowRequest) (*dto.UserMovementsResponse, error) {
	from, to, err := resolveWindow(in.From, in.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.MovementsByUser(ctx, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserMovementItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.UserMovementItem{UserID: r.UserID, UserName: r.UserName, Inbound: r.Inbound, Outbound: r.Outbound})
	}
	return &dto.UserMovementsResponse{Range: toDateRange(from, to), Items: items}, nil
}

// ExportCSV arma el CSV de movimientos de la ventana. Todas las celdas van
// entre comillas; comillas internas se duplican. Una ventana sin movimientos
// produce solo el encabezado.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, in dto.ReportWindowRequest) ([]byte, error) {
	f, err := movementFilter(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ExportRows(ctx, f)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, r := range rows {
		category := ""
		if r.Category != nil {
			category = *r.Category
		}
		user := ""
		if r.UserName != nil {
			user = *r.UserName
		}
		cells := []string{
			r.Date.Format("2006-01-02 15:04:05"),
			r.Type,
			r.Code,
			r.Product,
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.String(),
			r.Total.String(),
			category,
			user,
		}
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}
