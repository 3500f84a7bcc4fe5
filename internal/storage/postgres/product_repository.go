package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

const productColumns = `id, name, description, price, stock_quantity, category, image_url, is_active, created_at`

// ProductRepository is both the product read model and the inventory store.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// TryReserve decrements stock by quantity only when enough is left. The
// read-check-write happens inside a single conditional UPDATE, so two
// concurrent reservations on the same row never both succeed past the
// available quantity.
func (r *ProductRepository) TryReserve(ctx context.Context, productID string, quantity int) (bool, error) {
	const stmt = `
UPDATE products
SET stock_quantity = stock_quantity - $2
WHERE id = $1 AND stock_quantity >= $2`

	tag, err := r.exec(ctx, stmt, productID, quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Zero rows means either insufficient stock or an unknown product;
	// only the former is a reservation failure.
	var exists bool
	if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return false, nil
}

// Release returns previously reserved stock, compensating a failed order.
func (r *ProductRepository) Release(ctx context.Context, productID string, quantity int) error {
	const stmt = `UPDATE products SET stock_quantity = stock_quantity + $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, productID, quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("release stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.query(ctx, query, ids)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	return scanProducts(rows)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.queryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.Category, &p.ImageURL, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Product{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY created_at DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return scanProducts(rows)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE category = $1 AND is_active ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return scanProducts(rows)
}

func (r *ProductRepository) ListInStock(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE stock_quantity > 0 AND is_active ORDER BY created_at DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list in-stock products: %w", err)
	}
	return scanProducts(rows)
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	const stmt = `
INSERT INTO products (id, name, description, price, stock_quantity, category, image_url, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.Category,
		product.ImageURL,
		product.Active,
		product.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
			&p.Category, &p.ImageURL, &p.Active, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ProductRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
