package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de solo lectura que captura los parámetros recibidos
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	lastFilter repository.MovementFilter
	lastFrom   time.Time
	lastTo     time.Time
	lastLimit  int
	exportRows []repository.ExportRow
}

func (f *fakeReportRepo) TotalProducts(context.Context) (int, error)              { return 3, nil }
func (f *fakeReportRepo) TotalUnits(context.Context) (int64, error)               { return 120, nil }
func (f *fakeReportRepo) TotalValue(context.Context) (decimal.Decimal, error)     { return decimal.NewFromInt(999), nil }
func (f *fakeReportRepo) LowStock(context.Context) ([]repository.LowStockRow, error) { return nil, nil }

func (f *fakeReportRepo) StockRanking(_ context.Context, _ bool, limit int) ([]repository.StockRankRow, error) {
	f.lastLimit = limit
	return nil, nil
}

func (f *fakeReportRepo) KPIs(_ context.Context, from, to time.Time) (*repository.KPIResult, error) {
	f.lastFrom, f.lastTo = from, to
	return &repository.KPIResult{}, nil
}

func (f *fakeReportRepo) DailySeries(_ context.Context, filter repository.MovementFilter) ([]repository.DailySeriesRow, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeReportRepo) TopConsumption(_ context.Context, from, to time.Time, limit int) ([]repository.ConsumptionRow, error) {
	f.lastFrom, f.lastTo, f.lastLimit = from, to, limit
	return nil, nil
}

func (f *fakeReportRepo) ConsumptionByCategory(_ context.Context, from, to time.Time) ([]repository.CategoryConsumptionRow, error) {
	f.lastFrom, f.lastTo = from, to
	return nil, nil
}

func (f *fakeReportRepo) MovementsByUser(_ context.Context, from, to time.Time) ([]repository.UserMovementRow, error) {
	f.lastFrom, f.lastTo = from, to
	return nil, nil
}

func (f *fakeReportRepo) ExportRows(_ context.Context, filter repository.MovementFilter) ([]repository.ExportRow, error) {
	f.lastFilter = filter
	return f.exportRows, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de fechas
// ──────────────────────────────────────────────────────────────────────────────

// Sin parámetros, la ventana cubre los últimos 30 días (00:00:00 a 23:59:59).
func TestReportes_VentanaPorDefectoTreintaDias(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := usecase.NewReportUseCase(repo)

	_, err := uc.KPIs(context.Background(), dto.ReportWindowRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, repo.lastFrom.Hour())
	assert.Equal(t, 23, repo.lastTo.Hour())
	assert.Equal(t, 59, repo.lastTo.Minute())

	days := repo.lastTo.Sub(repo.lastFrom).Hours() / 24
	assert.InDelta(t, 30, days, 1.1, "la ventana por defecto debe rondar los 30 días")
}

// Fechas explícitas: from arranca a medianoche, to cierra el día completo.
func TestReportes_VentanaExplicita(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := usecase.NewReportUseCase(repo)

	_, err := uc.KPIs(context.Background(), dto.ReportWindowRequest{From: "2026-01-01", To: "2026-01-31"})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01 00:00:00", repo.lastFrom.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2026-01-31 23:59:59", repo.lastTo.Format("2006-01-02 15:04:05"))
}

// Fechas malformadas o invertidas → ErrInvalidInput.
func TestReportes_VentanaInvalida(t *testing.T) {
	uc := usecase.NewReportUseCase(&fakeReportRepo{})
	ctx := context.Background()

	_, err := uc.KPIs(ctx, dto.ReportWindowRequest{From: "01/01/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.KPIs(ctx, dto.ReportWindowRequest{From: "2026-02-01", To: "2026-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Los filtros de usuario y tipo se propagan; un tipo desconocido se rechaza.
func TestReportes_FiltrosDeMovimiento(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := usecase.NewReportUseCase(repo)
	ctx := context.Background()

	_, err := uc.DailySeries(ctx, dto.ReportWindowRequest{UserID: "u1", Type: "out"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.UserID)
	assert.Equal(t, "u1", *repo.lastFilter.UserID)
	require.NotNil(t, repo.lastFilter.Type)
	assert.Equal(t, "out", *repo.lastFilter.Type)

	_, err = uc.DailySeries(ctx, dto.ReportWindowRequest{Type: "edited"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los reportes solo filtran in/out")
}

// Límite: default 5, techo 100.
func TestReportes_LimiteSaneado(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := usecase.NewReportUseCase(repo)
	ctx := context.Background()

	_, err := uc.TopStock(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)

	_, err = uc.TopStock(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = uc.TopStock(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, repo.lastLimit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export CSV
// ──────────────────────────────────────────────────────────────────────────────

// Ventana sin movimientos → solo el encabezado.
func TestExportCSV_VacioSoloEncabezado(t *testing.T) {
	uc := usecase.NewReportUseCase(&fakeReportRepo{})

	data, err := uc.ExportCSV(context.Background(), dto.ReportWindowRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fecha,tipo,codigo,producto,cantidad,precio_unitario,total,categoria,usuario\n", string(data))
}

// Todas las celdas van entre comillas; comillas internas se duplican.
func TestExportCSV_CeldasEntrecomilladas(t *testing.T) {
	cat := "Lácteos"
	user := `Ana "la jefa"`
	repo := &fakeReportRepo{exportRows: []repository.ExportRow{{
		Date:      time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Type:      "out",
		Code:      "L-01",
		Product:   `Leche, entera "premium"`,
		Quantity:  4,
		UnitPrice: decimal.RequireFromString("25.50"),
		Total:     decimal.RequireFromString("102.00"),
		Category:  &cat,
		UserName:  &user,
	}}}
	uc := usecase.NewReportUseCase(repo)

	data, err := uc.ExportCSV(context.Background(), dto.ReportWindowRequest{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		`"2026-03-15 09:30:00","out","L-01","Leche, entera ""premium""","4","25.5","102","Lácteos","Ana ""la jefa"""`,
		lines[1])
}

// Campos nulos (categoría/usuario) se exportan como celdas vacías entrecomilladas.
func TestExportCSV_NulosComoVacios(t *testing.T) {
	repo := &fakeReportRepo{exportRows: []repository.ExportRow{{
		Date:     time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Type:     "in",
		Code:     "X-1",
		Product:  "Harina",
		Quantity: 2,
	}}}
	uc := usecase.NewReportUseCase(repo)

	data, err := uc.ExportCSV(context.Background(), dto.ReportWindowRequest{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Harina","2","0","0","",""`)
}
