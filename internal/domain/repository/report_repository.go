package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockRankRow fila de ranking de productos por cantidad.
type StockRankRow struct {
	ProductID string
	Name      string
	Quantity  int64
}

// LowStockRow producto en o por debajo de su stock mínimo.
type LowStockRow struct {
	ProductID string
	Name      string
	Quantity  int64
	StockMin  int64
}

// KPIResult indicadores agregados del inventario en una ventana de tiempo.
type KPIResult struct {
	InventoryValue decimal.Decimal
	AlertCount     int
	InboundUnits   int64
	OutboundUnits  int64
	OutboundCost   decimal.Decimal
}

// DailySeriesRow suma diaria de entradas y salidas.
type DailySeriesRow struct {
	Day      time.Time
	Inbound  int64
	Outbound int64
}

// ConsumptionRow consumo total (salidas) por producto.
type ConsumptionRow struct {
	ProductID string
	Name      string
	Total     int64
}

// CategoryConsumptionRow consumo total por categoría; CategoryID nil agrupa los sin categoría.
type CategoryConsumptionRow struct {
	CategoryID *string
	Category   *string
	Total      int64
}

// UserMovementRow entradas/salidas acumuladas por usuario.
type UserMovementRow struct {
	UserID   *string
	UserName *string
	Inbound  int64
	Outbound int64
}

// ExportRow fila del export CSV de movimientos (con joins resueltos).
type ExportRow struct {
	Date      time.Time
	Type      string
	Code      string
	Product   string
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Category  *string
	UserName  *string
}

// MovementFilter filtros opcionales sobre movimientos en reportes.
type MovementFilter struct {
	From   time.Time
	To     time.Time
	UserID *string
	Type   *string // in | out
}

// ReportRepository consultas de solo lectura sobre productos y movimientos.
// Sin estado; cada método es una agregación parametrizada.
type ReportRepository interface {
	TotalProducts(ctx context.Context) (int, error)
	TotalUnits(ctx context.Context) (int64, error)
	TotalValue(ctx context.Context) (decimal.Decimal, error)
	StockRanking(ctx context.Context, ascending bool, limit int) ([]StockRankRow, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	KPIs(ctx context.Context, from, to time.Time) (*KPIResult, error)
	DailySeries(ctx context.Context, f MovementFilter) ([]DailySeriesRow, error)
	TopConsumption(ctx context.Context, from, to time.Time, limit int) ([]ConsumptionRow, error)
	ConsumptionByCategory(ctx context.Context, from, to time.Time) ([]CategoryConsumptionRow, error)
	MovementsByUser(ctx context.Context, from, to time.Time) ([]UserMovementRow, error)
	ExportRows(ctx context.Context, f MovementFilter) ([]ExportRow, error)
}
