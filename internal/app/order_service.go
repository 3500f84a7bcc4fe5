package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/clock"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// InventoryStore reserves and releases product stock. TryReserve must be
// atomic per product: a decrement only happens when enough stock is left,
// and two concurrent reservations never both succeed past the available
// quantity.
type InventoryStore interface {
	TryReserve(ctx context.Context, productID string, quantity int) (bool, error)
	Release(ctx context.Context, productID string, quantity int) error
}

type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// CampaignStore resolves active campaigns in one batched lookup and records
// discounted sales after commit.
type CampaignStore interface {
	ResolveActive(ctx context.Context, productIDs []string, now time.Time) (map[string]domain.Campaign, error)
	AddSoldQuantity(ctx context.Context, campaignID string, quantity int) error
}

type UserDirectory interface {
	GetContactEmail(ctx context.Context, userID string) (string, error)
}

type OrderStore interface {
	Create(ctx context.Context, order domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// OrderNotifier is the fire-and-forget downstream collaborator; its outcome
// never affects the order.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order domain.Order) error
}

type OrderService struct {
	products  ProductReader
	inventory InventoryStore
	campaigns CampaignStore
	users     UserDirectory
	orders    OrderStore
	notifier  OrderNotifier
	clock     clock.Clock
	logger    *log.Logger

	notifyTimeout time.Duration
}

const defaultNotifyTimeout = 5 * time.Second

type OrderServiceOption func(*OrderService)

// WithLogger overrides the logger used for post-commit bookkeeping failures.
func WithLogger(logger *log.Logger) OrderServiceOption {
	return func(s *OrderService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifyTimeout overrides the deadline for the async notification call.
func WithNotifyTimeout(d time.Duration) OrderServiceOption {
	return func(s *OrderService) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

func NewOrderService(
	products ProductReader,
	inventory InventoryStore,
	campaigns CampaignStore,
	users UserDirectory,
	orders OrderStore,
	notifier OrderNotifier,
	clk clock.Clock,
	opts ...OrderServiceOption,
) *OrderService {
	svc := &OrderService{
		products:      products,
		inventory:     inventory,
		campaigns:     campaigns,
		users:         users,
		orders:        orders,
		notifier:      notifier,
		clock:         clk,
		logger:        log.Default(),
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	UserID          string
	ShippingAddress string
	Lines           []OrderLineInput
}

// reservation tracks a successful stock decrement so it can be compensated
// if a later step of the same call fails.
type reservation struct {
	productID string
	quantity  int
}

// CreateOrder prices and reserves every requested line against a single
// snapshot, then commits the order as one unit. Any failure after a
// reservation succeeded releases exactly the reservations made by this call.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if len(in.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	for _, line := range in.Lines {
		if line.ProductID == "" {
			return domain.Order{}, domain.ErrInvalidID
		}
		if line.Quantity <= 0 {
			return domain.Order{}, domain.ErrInvalidQuantity
		}
	}

	email, err := s.users.GetContactEmail(ctx, in.UserID)
	if err != nil {
		return domain.Order{}, err
	}

	// One timestamp for the whole call: every line prices against the same
	// campaign snapshot regardless of how long the rest of the call takes.
	now := s.clock.Now()

	ids := dedupeProductIDs(in.Lines)
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}
	productsByID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := productsByID[id]; !ok {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
	}

	activeCampaigns, err := s.campaigns.ResolveActive(ctx, ids, now)
	if err != nil {
		return domain.Order{}, err
	}

	reserved := make([]reservation, 0, len(in.Lines))
	for _, line := range in.Lines {
		ok, err := s.inventory.TryReserve(ctx, line.ProductID, line.Quantity)
		if err != nil {
			s.releaseAll(ctx, reserved)
			return domain.Order{}, err
		}
		if !ok {
			s.releaseAll(ctx, reserved)
			product := productsByID[line.ProductID]
			return domain.Order{}, &domain.OutOfStockError{
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Requested:   line.Quantity,
				Available:   product.StockQuantity,
			}
		}
		reserved = append(reserved, reservation{productID: line.ProductID, quantity: line.Quantity})
	}

	orderID := newID()
	lines := make([]domain.OrderLine, 0, len(in.Lines))
	total := decimal.Zero
	for _, line := range in.Lines {
		product := productsByID[line.ProductID]
		var campaign *domain.Campaign
		if c, ok := activeCampaigns[line.ProductID]; ok {
			campaign = &c
		}
		unitPrice := PriceLine(product, campaign, now)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, domain.OrderLine{
			ID:          newID(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	order := domain.Order{
		ID:              orderID,
		UserID:          in.UserID,
		UserEmail:       email,
		Lines:           lines,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseAll(ctx, reserved)
		return domain.Order{}, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	s.recordCampaignSales(ctx, in.Lines, activeCampaigns)
	s.dispatchNotification(order)

	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) releaseAll(ctx context.Context, reserved []reservation) {
	for _, r := range reserved {
		if err := s.inventory.Release(ctx, r.productID, r.quantity); err != nil {
			s.logger.Printf("ERROR: release %d units of product %s: %v", r.quantity, r.productID, err)
		}
	}
}

// recordCampaignSales bumps sold quantities for campaign-priced lines after
// the order is durable. Best effort: failures are logged and never roll back
// the committed order.
func (s *OrderService) recordCampaignSales(ctx context.Context, lines []OrderLineInput, campaigns map[string]domain.Campaign) {
	sold := make(map[string]int)
	for _, line := range lines {
		if c, ok := campaigns[line.ProductID]; ok {
			sold[c.ID] += line.Quantity
		}
	}
	for campaignID, qty := range sold {
		if err := s.campaigns.AddSoldQuantity(ctx, campaignID, qty); err != nil {
			s.logger.Printf("WARN: record %d sold units for campaign %s: %v", qty, campaignID, err)
		}
	}
}

// dispatchNotification hands the order to the downstream notifier without
// blocking the caller; the goroutine gets its own context so an external
// caller timeout cannot cancel the delivery attempt.
func (s *OrderService) dispatchNotification(order domain.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.OrderCreated(ctx, order); err != nil {
			s.logger.Printf("WARN: notify order created %s: %v", order.ID, err)
		}
	}()
}

func dedupeProductIDs(lines []OrderLineInput) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
