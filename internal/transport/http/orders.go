package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// OrderCreator is the minimal interface needed to place an order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in app.CreateOrderInput) (domain.Order, error)
}

// OrderLister is the minimal interface needed to list a user's orders.
type OrderLister interface {
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// HandleCreateOrder returns an HTTP handler for placing orders.
func HandleCreateOrder(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		lines := make([]app.OrderLineInput, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, app.OrderLineInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order, err := svc.CreateOrder(r.Context(), app.CreateOrderInput{
			UserID:          req.UserID,
			ShippingAddress: req.ShippingAddress,
			Lines:           lines,
		})
		if err != nil {
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOrderResponse(order))
	}
}

// HandleListUserOrders returns an HTTP handler for GET /orders/user/{id}.
func HandleListUserOrders(svc OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID, ok := parseUserOrdersPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		orders, err := svc.ListUserOrders(r.Context(), userID)
		if err != nil {
			writeOrderError(w, err)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, codeEmptyOrder, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case errors.Is(err, domain.ErrOutOfStock):
		writeError(w, http.StatusConflict, codeOutOfStock, err.Error())
	case errors.Is(err, domain.ErrPersistenceFailed):
		writeError(w, http.StatusInternalServerError, codePersistenceFailed, "order could not be persisted")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseUserOrdersPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "orders" || parts[1] != "user" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type createOrderRequest struct {
	UserID          string             `json:"user_id"`
	ShippingAddress string             `json:"shipping_address"`
	Items           []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	UserEmail       string              `json:"user_email"`
	Items           []orderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
}

type orderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, orderItemResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return orderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		UserEmail:       order.UserEmail,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
	}
}
