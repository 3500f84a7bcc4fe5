package notify

import (
	"context"
	"log"

	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// LogNotifier stands in when no queue is configured so the service still
// runs with notification delivery reduced to a log line.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderCreated(_ context.Context, order domain.Order) error {
	n.logger.Printf("order created id=%s user=%s total=%s lines=%d",
		order.ID, order.UserID, order.TotalAmount.StringFixed(2), len(order.Lines))
	return nil
}
