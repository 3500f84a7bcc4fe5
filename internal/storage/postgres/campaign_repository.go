package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

const campaignColumns = `id, name, description, product_id, discount_percentage, max_quantity, sold_quantity, starts_at, ends_at, is_active, created_at`

// activePredicate encodes campaign eligibility: active flag, now within
// [starts_at, ends_at), quota not exhausted.
const activePredicate = `is_active AND starts_at <= $2 AND ends_at > $2 AND (max_quantity IS NULL OR sold_quantity < max_quantity)`

type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// ResolveActive returns the active campaign per product in one batched query.
// When several campaigns overlap for the same product, the most recently
// started one wins. Products without an active campaign are absent from the
// result.
func (r *CampaignRepository) ResolveActive(ctx context.Context, productIDs []string, now time.Time) (map[string]domain.Campaign, error) {
	const query = `
SELECT DISTINCT ON (product_id) ` + campaignColumns + `
FROM campaigns
WHERE product_id = ANY($1) AND ` + activePredicate + `
ORDER BY product_id, starts_at DESC`

	rows, err := r.query(ctx, query, productIDs, now)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("resolve active campaigns: %w", err)
	}
	campaigns, err := scanCampaigns(rows)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		byProduct[c.ProductID] = c
	}
	return byProduct, nil
}

// AddSoldQuantity records units sold under the campaign's discount.
func (r *CampaignRepository) AddSoldQuantity(ctx context.Context, campaignID string, quantity int) error {
	const stmt = `UPDATE campaigns SET sold_quantity = sold_quantity + $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, campaignID, quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("add sold quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	const query = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE is_active AND starts_at <= $1 AND ends_at > $1 AND (max_quantity IS NULL OR sold_quantity < max_quantity)
ORDER BY starts_at DESC`

	rows, err := r.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list active campaigns: %w", err)
	}
	return scanCampaigns(rows)
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (domain.Campaign, error) {
	const query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var c domain.Campaign
	err := r.queryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.ProductID, &c.DiscountPercentage,
		&c.MaxQuantity, &c.SoldQuantity, &c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Campaign{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Campaign{}, domain.ErrCampaignNotFound
		}
		return domain.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, campaign domain.Campaign) error {
	const stmt = `
INSERT INTO campaigns (id, name, description, product_id, discount_percentage, max_quantity, sold_quantity, starts_at, ends_at, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		campaign.ID,
		campaign.Name,
		campaign.Description,
		campaign.ProductID,
		campaign.DiscountPercentage,
		campaign.MaxQuantity,
		campaign.SoldQuantity,
		campaign.StartsAt,
		campaign.EndsAt,
		campaign.Active,
		campaign.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func scanCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.ProductID, &c.DiscountPercentage,
			&c.MaxQuantity, &c.SoldQuantity, &c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *CampaignRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CampaignRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CampaignRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
