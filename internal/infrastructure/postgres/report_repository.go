package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre productos y movimientos.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// TotalProducts cuenta productos.
func (r *ReportRepo) TotalProducts(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reports.TotalProducts: %w", err)
	}
	return n, nil
}

// TotalUnits suma la cantidad de todos los productos.
func (r *ReportRepo) TotalUnits(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::bigint FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reports.TotalUnits: %w", err)
	}
	return n, nil
}

// TotalValue calcula el valor total del inventario (Σ cantidad × precio unitario).
func (r *ReportRepo) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM products`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.TotalValue: %w", err)
	}
	return v, nil
}

// StockRanking devuelve los N productos con mayor (o menor) cantidad.
func (r *ReportRepo) StockRanking(ctx context.Context, ascending bool, limit int) ([]repository.StockRankRow, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := fmt.Sprintf(
		`SELECT id, name, quantity FROM products ORDER BY quantity %s, id LIMIT $1`, order)
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.StockRanking: %w", err)
	}
	defer rows.Close()
	var out []repository.StockRankRow
	for rows.Next() {
		var row repository.StockRankRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.StockRanking scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LowStock lista productos con cantidad en o por debajo de su mínimo,
// ordenados por déficit descendente y nombre.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
		SELECT id, name, quantity, stock_min
		FROM products
		WHERE quantity <= stock_min
		ORDER BY (stock_min - quantity) DESC, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStock: %w", err)
	}
	defer rows.Close()
	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity, &row.StockMin); err != nil {
			return nil, fmt.Errorf("reports.LowStock scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// KPIs agrega valor de inventario, alertas y entradas/salidas del período.
func (r *ReportRepo) KPIs(ctx context.Context, from, to time.Time) (*repository.KPIResult, error) {
	var res repository.KPIResult

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM products`).Scan(&res.InventoryValue); err != nil {
		return nil, fmt.Errorf("reports.KPIs valor: %w", err)
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM products WHERE quantity < stock_min`).Scan(&res.AlertCount); err != nil {
		return nil, fmt.Errorf("reports.KPIs alertas: %w", err)
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::bigint FROM movements WHERE type = $1 AND date BETWEEN $2 AND $3`,
		entity.MovementTypeIn, from, to).Scan(&res.InboundUnits); err != nil {
		return nil, fmt.Errorf("reports.KPIs entradas: %w", err)
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::bigint FROM movements WHERE type = $1 AND date BETWEEN $2 AND $3`,
		entity.MovementTypeOut, from, to).Scan(&res.OutboundUnits); err != nil {
		return nil, fmt.Errorf("reports.KPIs salidas: %w", err)
	}
	if err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(m.quantity * p.unit_price), 0)
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = $1 AND m.date BETWEEN $2 AND $3`,
		entity.MovementTypeOut, from, to).Scan(&res.OutboundCost); err != nil {
		return nil, fmt.Errorf("reports.KPIs costo salidas: %w", err)
	}
	return &res, nil
}

// movementWhere arma el WHERE común de filtros de movimientos (ventana, usuario, tipo).
func movementWhere(f repository.MovementFilter) (string, []any) {
	where := `m.date BETWEEN $1 AND $2`
	args := []any{f.From, f.To}
	if f.UserID != nil {
		where += fmt.Sprintf(` AND m.user_id = $%d`, len(args)+1)
		args = append(args, *f.UserID)
	}
	if f.Type != nil {
		where += fmt.Sprintf(` AND m.type = $%d`, len(args)+1)
		args = append(args, *f.Type)
	}
	return where, args
}

// DailySeries suma entradas y salidas por día dentro de la ventana.
func (r *ReportRepo) DailySeries(ctx context.Context, f repository.MovementFilter) ([]repository.DailySeriesRow, error) {
	where, args := movementWhere(f)
	query := fmt.Sprintf(`
		SELECT DATE(m.date) AS day,
		       COALESCE(SUM(CASE WHEN m.type = 'in'  THEN m.quantity ELSE 0 END), 0)::bigint AS inbound,
		       COALESCE(SUM(CASE WHEN m.type = 'out' THEN m.quantity ELSE 0 END), 0)::bigint AS outbound
		FROM movements m
		WHERE %s
		GROUP BY DATE(m.date)
		ORDER BY day`, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.DailySeries: %w", err)
	}
	defer rows.Close()
	var out []repository.DailySeriesRow
	for rows.Next() {
		var row repository.DailySeriesRow
		if err := rows.Scan(&row.Day, &row.Inbound, &row.Outbound); err != nil {
			return nil, fmt.Errorf("reports.DailySeries scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopConsumption productos con más salidas en la ventana.
func (r *ReportRepo) TopConsumption(ctx context.Context, from, to time.Time, limit int) ([]repository.ConsumptionRow, error) {
	const query = `
		SELECT p.id, p.name, SUM(m.quantity)::bigint AS total
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = 'out' AND m.date BETWEEN $1 AND $2
		GROUP BY p.id, p.name
		ORDER BY total DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopConsumption: %w", err)
	}
	defer rows.Close()
	var out []repository.ConsumptionRow
	for rows.Next() {
		var row repository.ConsumptionRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.TopConsumption scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ConsumptionByCategory salidas agrupadas por categoría (NULL agrupa los sin categoría).
func (r *ReportRepo) ConsumptionByCategory(ctx context.Context, from, to time.Time) ([]repository.CategoryConsumptionRow, error) {
	const query = `
		SELECT c.id, c.name, COALESCE(SUM(m.quantity), 0)::bigint AS total
		FROM movements m
		JOIN products p        ON p.id = m.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE m.type = 'out' AND m.date BETWEEN $1 AND $2
		GROUP BY c.id, c.name
		ORDER BY total DESC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.ConsumptionByCategory: %w", err)
	}
	defer rows.Close()
	var out []repository.CategoryConsumptionRow
	for rows.Next() {
		var row repository.CategoryConsumptionRow
		if err := rows.Scan(&row.CategoryID, &row.Category, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.ConsumptionByCategory scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MovementsByUser entradas y salidas acumuladas por usuario en la ventana.
func (r *ReportRepo) MovementsByUser(ctx context.Context, from, to time.Time) ([]repository.UserMovementRow, error) {
	const query = `
		SELECT u.id, u.name,
		       COALESCE(SUM(CASE WHEN m.type = 'in'  THEN m.quantity ELSE 0 END), 0)::bigint AS inbound,
		       COALESCE(SUM(CASE WHEN m.type = 'out' THEN m.quantity ELSE 0 END), 0)::bigint AS outbound
		FROM movements m
		LEFT JOIN users u ON u.id = m.user_id
		WHERE m.date BETWEEN $1 AND $2
		GROUP BY u.id, u.name
		ORDER BY outbound DESC, inbound DESC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.MovementsByUser: %w", err)
	}
	defer rows.Close()
	var out []repository.UserMovementRow
	for rows.Next() {
		var row repository.UserMovementRow
		if err := rows.Scan(&row.UserID, &row.UserName, &row.Inbound, &row.Outbound); err != nil {
			return nil, fmt.Errorf("reports.MovementsByUser scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ExportRows filas del export CSV con joins a producto, categoría y usuario.
// Solo incluye movimientos cuyo producto aún existe (JOIN estricto, como el listado original).
func (r *ReportRepo) ExportRows(ctx context.Context, f repository.MovementFilter) ([]repository.ExportRow, error) {
	where, args := movementWhere(f)
	query := fmt.Sprintf(`
		SELECT m.date, m.type, p.code, p.name, m.quantity, p.unit_price,
		       (m.quantity * p.unit_price) AS total, c.name, u.name
		FROM movements m
		JOIN products p        ON p.id = m.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN users u      ON u.id = m.user_id
		WHERE %s
		ORDER BY m.date DESC, m.id DESC`, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.ExportRows: %w", err)
	}
	defer rows.Close()
	var out []repository.ExportRow
	for rows.Next() {
		var row repository.ExportRow
		if err := rows.Scan(&row.Date, &row.Type, &row.Code, &row.Product,
			&row.Quantity, &row.UnitPrice, &row.Total, &row.Category, &row.UserName); err != nil {
			return nil, fmt.Errorf("reports.ExportRows scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
