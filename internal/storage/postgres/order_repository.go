package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create writes the order and all its lines in one transaction; either the
// whole aggregate becomes durable or none of it does.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		const orderStmt = `
INSERT INTO orders (id, user_id, user_email, total_amount, status, shipping_address, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

		_, err := r.exec(txCtx, orderStmt,
			order.ID,
			order.UserID,
			order.UserEmail,
			order.TotalAmount,
			order.Status,
			order.ShippingAddress,
			order.CreatedAt,
		)
		if err != nil {
			if isInvalidUUID(err) {
				return domain.ErrInvalidID
			}
			if isForeignKeyViolation(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("insert order: %w", err)
		}

		const lineStmt = `
INSERT INTO order_lines (id, order_id, product_id, product_name, position, quantity, unit_price, line_total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		for i, line := range order.Lines {
			_, err := r.exec(txCtx, lineStmt,
				line.ID,
				order.ID,
				line.ProductID,
				line.ProductName,
				i,
				line.Quantity,
				line.UnitPrice,
				line.LineTotal,
			)
			if err != nil {
				return fmt.Errorf("insert order line %d: %w", i, err)
			}
		}
		return nil
	})
}

// ListByUser returns the user's orders most-recent-first, lines in the
// position they had in the original request.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const orderQuery = `
SELECT id, user_id, user_email, total_amount, status, shipping_address, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id`

	rows, err := r.query(ctx, orderQuery, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders, orderIDs, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	const lineQuery = `
SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
FROM order_lines
WHERE order_id = ANY($1)
ORDER BY order_id, position`

	lineRows, err := r.query(ctx, lineQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer lineRows.Close()

	linesByOrder := make(map[string][]domain.OrderLine, len(orders))
	for lineRows.Next() {
		var l domain.OrderLine
		if err := lineRows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.ProductName,
			&l.Quantity, &l.UnitPrice, &l.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		linesByOrder[l.OrderID] = append(linesByOrder[l.OrderID], l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	for i := range orders {
		orders[i].Lines = linesByOrder[orders[i].ID]
	}
	return orders, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, []string, error) {
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []string
	)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.UserEmail, &o.TotalAmount,
			&status, &o.ShippingAddress, &o.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, ids, nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
