package http

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
)

// CampaignCatalog is the minimal interface needed for campaign read endpoints.
type CampaignCatalog interface {
	ListActiveCampaigns(ctx context.Context) ([]app.CampaignOffer, error)
	GetCampaign(ctx context.Context, id string) (app.CampaignOffer, error)
}

// HandleActiveCampaigns serves GET /campaigns/active.
func HandleActiveCampaigns(svc CampaignCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		offers, err := svc.ListActiveCampaigns(r.Context())
		if err != nil {
			writeCatalogError(w, err)
			return
		}

		resp := make([]campaignResponse, 0, len(offers))
		for _, offer := range offers {
			resp = append(resp, toCampaignResponse(offer))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetCampaign serves GET /campaigns/{id}; "/campaigns/active" is routed
// to the listing before this handler sees it.
func HandleGetCampaign(svc CampaignCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		id, ok := parseSubresourcePath(r.URL.Path, "campaigns")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if id == "active" {
			HandleActiveCampaigns(svc)(w, r)
			return
		}

		offer, err := svc.GetCampaign(r.Context(), id)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCampaignResponse(offer))
	}
}

type campaignResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	MaxQuantity        *int            `json:"max_quantity,omitempty"`
	SoldQuantity       int             `json:"sold_quantity"`
	StartsAt           time.Time       `json:"starts_at"`
	EndsAt             time.Time       `json:"ends_at"`
	Active             bool            `json:"is_active"`
}

func toCampaignResponse(offer app.CampaignOffer) campaignResponse {
	return campaignResponse{
		ID:                 offer.Campaign.ID,
		Name:               offer.Campaign.Name,
		Description:        offer.Campaign.Description,
		ProductID:          offer.Campaign.ProductID,
		ProductName:        offer.Product.Name,
		OriginalPrice:      offer.Product.Price,
		DiscountedPrice:    offer.DiscountedPrice,
		DiscountPercentage: offer.Campaign.DiscountPercentage,
		MaxQuantity:        offer.Campaign.MaxQuantity,
		SoldQuantity:       offer.Campaign.SoldQuantity,
		StartsAt:           offer.Campaign.StartsAt,
		EndsAt:             offer.Campaign.EndsAt,
		Active:             offer.Campaign.Active,
	}
}
