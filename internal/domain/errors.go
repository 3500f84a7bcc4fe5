package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrOutOfStock            = errors.New("out of stock")
	ErrPersistenceFailed     = errors.New("order persistence failed")
	ErrEmptyOrder            = errors.New("order has no lines")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidID             = errors.New("invalid id")
	ErrProductNameRequired   = errors.New("product name required")
	ErrCampaignNameRequired  = errors.New("campaign name required")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrInvalidStock          = errors.New("invalid stock quantity")
	ErrInvalidDiscount       = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidCampaignWindow = errors.New("campaign end must be after start")
)

// OutOfStockError names the first product whose reservation failed.
// Available is the stock observed in the call's read snapshot; -1 when
// unknown. Matches ErrOutOfStock under errors.Is.
type OutOfStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	if e.Available < 0 {
		return fmt.Sprintf("not enough stock for product %s: requested %d", name, e.Requested)
	}
	return fmt.Sprintf("not enough stock for product %s: requested %d, available %d", name, e.Requested, e.Available)
}

func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}
