package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// ProductCatalog is the minimal interface needed for product read endpoints.
type ProductCatalog interface {
	ListProducts(ctx context.Context, in app.ListProductsInput) ([]app.ProductOffer, error)
	GetProduct(ctx context.Context, id string) (app.ProductOffer, error)
}

// HandleListProducts serves GET /products with optional category and
// in_stock filters.
func HandleListProducts(svc ProductCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		offers, err := svc.ListProducts(r.Context(), app.ListProductsInput{
			Category:    r.URL.Query().Get("category"),
			InStockOnly: r.URL.Query().Get("in_stock") == "true",
		})
		if err != nil {
			writeCatalogError(w, err)
			return
		}

		resp := make([]productResponse, 0, len(offers))
		for _, offer := range offers {
			resp = append(resp, toProductResponse(offer))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetProduct serves GET /products/{id}.
func HandleGetProduct(svc ProductCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		id, ok := parseSubresourcePath(r.URL.Path, "products")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		offer, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(offer))
	}
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case errors.Is(err, domain.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, codeCampaignNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseSubresourcePath(path, resource string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != resource || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type productResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	StockQuantity      int              `json:"stock_quantity"`
	Category           string           `json:"category"`
	ImageURL           string           `json:"image_url"`
	Active             bool             `json:"is_active"`
	HasActiveCampaign  bool             `json:"has_active_campaign"`
	CampaignName       string           `json:"campaign_name,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountedPrice    decimal.Decimal  `json:"discounted_price"`
	CreatedAt          time.Time        `json:"created_at"`
}

func toProductResponse(offer app.ProductOffer) productResponse {
	resp := productResponse{
		ID:              offer.Product.ID,
		Name:            offer.Product.Name,
		Description:     offer.Product.Description,
		Price:           offer.Product.Price,
		StockQuantity:   offer.Product.StockQuantity,
		Category:        offer.Product.Category,
		ImageURL:        offer.Product.ImageURL,
		Active:          offer.Product.Active,
		DiscountedPrice: offer.UnitPrice,
		CreatedAt:       offer.Product.CreatedAt,
	}
	if offer.Campaign != nil {
		resp.HasActiveCampaign = true
		resp.CampaignName = offer.Campaign.Name
		pct := offer.Campaign.DiscountPercentage
		resp.DiscountPercentage = &pct
	}
	return resp
}
