package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is a time-boxed, optionally quantity-capped discount on a product.
type Campaign struct {
	ID                 string
	Name               string
	Description        string
	ProductID          string
	DiscountPercentage decimal.Decimal
	// MaxQuantity caps how many units may sell at the discounted price;
	// nil means uncapped.
	MaxQuantity  *int
	SoldQuantity int
	StartsAt     time.Time
	EndsAt       time.Time
	Active       bool
	CreatedAt    time.Time
}

// ActiveAt reports whether the campaign is active at the given instant:
// active flag set, now within [StartsAt, EndsAt), and quota not exhausted.
func (c Campaign) ActiveAt(now time.Time) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.StartsAt) || !now.Before(c.EndsAt) {
		return false
	}
	if c.MaxQuantity != nil && c.SoldQuantity >= *c.MaxQuantity {
		return false
	}
	return true
}
