package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

type fakeCampaignService struct {
	offers  []app.CampaignOffer
	offer   app.CampaignOffer
	err     error
	gotByID string
}

func (f *fakeCampaignService) ListActiveCampaigns(context.Context) ([]app.CampaignOffer, error) {
	return f.offers, f.err
}

func (f *fakeCampaignService) GetCampaign(_ context.Context, id string) (app.CampaignOffer, error) {
	f.gotByID = id
	return f.offer, f.err
}

func TestHandleGetCampaign(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	offer := app.CampaignOffer{
		Campaign: domain.Campaign{
			ID: "camp-1", Name: "Spring Sale", ProductID: "prod-a",
			DiscountPercentage: price("20"),
			StartsAt:           now.Add(-time.Hour), EndsAt: now.Add(time.Hour), Active: true,
		},
		Product:         domain.Product{ID: "prod-a", Name: "Keyboard", Price: price("100.00")},
		DiscountedPrice: price("80.00"),
	}

	t.Run("joins product fields", func(t *testing.T) {
		svc := &fakeCampaignService{offer: offer}
		req := httptest.NewRequest(http.MethodGet, "/campaigns/camp-1", nil)
		rec := httptest.NewRecorder()
		HandleGetCampaign(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			ID              string `json:"id"`
			ProductName     string `json:"product_name"`
			OriginalPrice   string `json:"original_price"`
			DiscountedPrice string `json:"discounted_price"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != "camp-1" || resp.ProductName != "Keyboard" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("routes active listing", func(t *testing.T) {
		svc := &fakeCampaignService{offers: []app.CampaignOffer{offer}}
		req := httptest.NewRequest(http.MethodGet, "/campaigns/active", nil)
		rec := httptest.NewRecorder()
		HandleGetCampaign(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].ID != "camp-1" {
			t.Fatalf("unexpected listing: %+v", resp)
		}
		if svc.gotByID != "" {
			t.Fatalf("active must not hit the by-id lookup, got %q", svc.gotByID)
		}
	})

	t.Run("unknown campaign is 404", func(t *testing.T) {
		svc := &fakeCampaignService{err: domain.ErrCampaignNotFound}
		req := httptest.NewRequest(http.MethodGet, "/campaigns/camp-missing", nil)
		rec := httptest.NewRecorder()
		HandleGetCampaign(svc)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, rec, codeCampaignNotFound)
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/campaigns/camp-1", nil)
		rec := httptest.NewRecorder()
		HandleGetCampaign(&fakeCampaignService{})(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}
