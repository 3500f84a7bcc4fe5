package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

// CatalogAdmin is the minimal interface needed for catalog write endpoints.
type CatalogAdmin interface {
	CreateProduct(ctx context.Context, in app.CreateProductInput) (domain.Product, error)
	CreateCampaign(ctx context.Context, in app.CreateCampaignInput) (domain.Campaign, error)
}

// HandleAdminProducts serves POST /admin/products.
func HandleAdminProducts(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createProductRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		product, err := svc.CreateProduct(r.Context(), app.CreateProductInput{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			StockQuantity: req.StockQuantity,
			Category:      req.Category,
			ImageURL:      req.ImageURL,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createProductResponse{
			ID:            product.ID,
			Name:          product.Name,
			Price:         product.Price,
			StockQuantity: product.StockQuantity,
			CreatedAt:     product.CreatedAt,
		})
	}
}

// HandleAdminCampaigns serves POST /admin/campaigns.
func HandleAdminCampaigns(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createCampaignRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		campaign, err := svc.CreateCampaign(r.Context(), app.CreateCampaignInput{
			Name:               req.Name,
			Description:        req.Description,
			ProductID:          req.ProductID,
			DiscountPercentage: req.DiscountPercentage,
			MaxQuantity:        req.MaxQuantity,
			StartsAt:           req.StartsAt,
			EndsAt:             req.EndsAt,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createCampaignResponse{
			ID:        campaign.ID,
			Name:      campaign.Name,
			ProductID: campaign.ProductID,
			StartsAt:  campaign.StartsAt,
			EndsAt:    campaign.EndsAt,
		})
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNameRequired):
		writeError(w, http.StatusBadRequest, codeProductNameRequired, err.Error())
	case errors.Is(err, domain.ErrCampaignNameRequired):
		writeError(w, http.StatusBadRequest, codeCampaignNameRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidStock):
		writeError(w, http.StatusBadRequest, codeInvalidStock, err.Error())
	case errors.Is(err, domain.ErrInvalidDiscount):
		writeError(w, http.StatusBadRequest, codeInvalidDiscount, err.Error())
	case errors.Is(err, domain.ErrInvalidCampaignWindow):
		writeError(w, http.StatusBadRequest, codeInvalidCampaignWindow, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type createProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
}

type createProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

type createCampaignRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ProductID          string          `json:"product_id"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	MaxQuantity        *int            `json:"max_quantity"`
	StartsAt           time.Time       `json:"starts_at"`
	EndsAt             time.Time       `json:"ends_at"`
}

type createCampaignResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ProductID string    `json:"product_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}
