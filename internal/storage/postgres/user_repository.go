package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// UserRepository is the identity collaborator: orders only need the contact
// email snapshot.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetContactEmail(ctx context.Context, userID string) (string, error) {
	const query = `SELECT email FROM users WHERE id = $1`

	var email string
	err := r.queryRow(ctx, query, userID).Scan(&email)
	if err != nil {
		if isInvalidUUID(err) {
			return "", domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("get contact email: %w", err)
	}
	return email, nil
}

func (r *UserRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
