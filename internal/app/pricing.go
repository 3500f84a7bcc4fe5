package app

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// priceScale is the currency's minor-unit precision.
const priceScale = 2

var hundred = decimal.NewFromInt(100)

// PriceLine returns the unit price for a product given an optional campaign.
// The campaign only applies when it is active at the given instant; otherwise
// the list price is used. Discounted prices are rounded half-up to the
// currency's minor unit. Pure function, no side effects.
func PriceLine(p domain.Product, c *domain.Campaign, now time.Time) decimal.Decimal {
	if c == nil || !c.ActiveAt(now) {
		return p.Price
	}
	discount := p.Price.Mul(c.DiscountPercentage).Div(hundred)
	return p.Price.Sub(discount).Round(priceScale)
}
