package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-api/internal/domain"
	"github.com/tu-usuario/inventario-api/internal/domain/entity"
	"github.com/tu-usuario/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Asigna ID si viene vacío.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, user_id, date, product_name, product_code)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), $7, $8)`
	var date any
	if !m.Date.IsZero() {
		date = m.Date
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.UserID, date, m.ProductName, m.ProductCode,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, user_id, date, product_name, product_code
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UserID, &m.Date, &m.ProductName, &m.ProductCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos con nombre/código resueltos: si el producto ya no existe
// se usa el snapshot del propio movimiento (COALESCE).
// Orden: fecha DESC, id DESC — determinista aunque las fechas coincidan.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]*repository.MovementListItem, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.user_id, m.date,
		       m.product_name, m.product_code,
		       COALESCE(m.product_name, p.name, 'Producto') AS resolved_name,
		       COALESCE(m.product_code, p.code, '')         AS resolved_code,
		       u.name                                       AS user_name
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users    u ON u.id = m.user_id
		ORDER BY m.date DESC, m.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementListItem
	for rows.Next() {
		var it repository.MovementListItem
		if err := rows.Scan(
			&it.Movement.ID, &it.Movement.ProductID, &it.Movement.Type, &it.Movement.Quantity,
			&it.Movement.UserID, &it.Movement.Date, &it.Movement.ProductName, &it.Movement.ProductCode,
			&it.ProductName, &it.ProductCode, &it.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// CountByProduct cuenta movimientos de un producto (útil en verificación y tests).
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE product_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// Update actualiza un movimiento (superficie administrativa; el ledger nunca lo usa).
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE movements SET product_id = $2, type = $3, quantity = $4, user_id = $5, date = $6,
			product_name = $7, product_code = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.UserID, m.Date,
		m.ProductName, m.ProductCode)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento (superficie administrativa).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
