package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. StockQuantity is only mutated through
// the inventory store's atomic reserve/release operations.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	ImageURL      string
	Active        bool
	CreatedAt     time.Time
}
