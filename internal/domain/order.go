package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// Order is the aggregate produced by a successful order-creation call.
// Lines keep the order they had in the request.
type Order struct {
	ID              string
	UserID          string
	UserEmail       string
	Lines           []OrderLine
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	CreatedAt       time.Time
}

// OrderLine freezes the unit price that was resolved when the order was
// assembled; later campaign changes never touch it.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
