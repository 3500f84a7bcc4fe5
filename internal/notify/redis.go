package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

const orderCreatedQueueKey = "orders:created:queue"

// RedisNotifier pushes order-created messages onto a Redis list consumed by
// the downstream notification workers. Delivery is best effort; the order
// path never waits on or rolls back for it.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(redisURL string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

type orderCreatedMessage struct {
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	UserEmail   string             `json:"user_email"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Lines       []orderLineMessage `json:"lines"`
	CreatedAt   time.Time          `json:"created_at"`
}

type orderLineMessage struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (n *RedisNotifier) OrderCreated(ctx context.Context, order domain.Order) error {
	msg := orderCreatedMessage{
		OrderID:     order.ID,
		UserID:      order.UserID,
		UserEmail:   order.UserEmail,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	for _, line := range order.Lines {
		msg.Lines = append(msg.Lines, orderLineMessage{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order created message: %w", err)
	}
	return n.client.LPush(ctx, orderCreatedQueueKey, data).Err()
}
