package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/app"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

type fakeAdminService struct {
	product     domain.Product
	productErr  error
	campaign    domain.Campaign
	campaignErr error
}

func (f *fakeAdminService) CreateProduct(_ context.Context, in app.CreateProductInput) (domain.Product, error) {
	return f.product, f.productErr
}

func (f *fakeAdminService) CreateCampaign(_ context.Context, in app.CreateCampaignInput) (domain.Campaign, error) {
	return f.campaign, f.campaignErr
}

func TestHandleAdminProducts(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	t.Run("creates product", func(t *testing.T) {
		svc := &fakeAdminService{product: domain.Product{
			ID: "prod-1", Name: "Keyboard", Price: price("100.00"), StockQuantity: 10,
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}}

		body := `{"name":"Keyboard","price":"100.00","stock_quantity":10,"category":"peripherals"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleAdminProducts(svc)(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		cases := []struct {
			name     string
			err      error
			wantCode string
		}{
			{"missing name", domain.ErrProductNameRequired, codeProductNameRequired},
			{"negative price", domain.ErrInvalidPrice, codeInvalidPrice},
			{"negative stock", domain.ErrInvalidStock, codeInvalidStock},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &fakeAdminService{productErr: tc.err}
				req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(`{}`))
				rec := httptest.NewRecorder()
				HandleAdminProducts(svc)(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				assertErrorCode(t, rec, tc.wantCode)
			})
		}
	})

	t.Run("rejects non-POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
		rec := httptest.NewRecorder()
		HandleAdminProducts(&fakeAdminService{})(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandleAdminCampaigns(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates campaign", func(t *testing.T) {
		svc := &fakeAdminService{campaign: domain.Campaign{
			ID: "camp-1", Name: "Spring Sale", ProductID: "prod-a",
			StartsAt: now, EndsAt: now.Add(24 * time.Hour),
		}}

		body := `{"name":"Spring Sale","product_id":"prod-a","discount_percentage":"15","starts_at":"2025-03-01T12:00:00Z","ends_at":"2025-03-02T12:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/campaigns", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleAdminCampaigns(svc)(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		cases := []struct {
			name     string
			err      error
			wantCode string
		}{
			{"bad discount", domain.ErrInvalidDiscount, codeInvalidDiscount},
			{"bad window", domain.ErrInvalidCampaignWindow, codeInvalidCampaignWindow},
			{"bad cap", domain.ErrInvalidQuantity, codeInvalidQuantity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &fakeAdminService{campaignErr: tc.err}
				req := httptest.NewRequest(http.MethodPost, "/admin/campaigns", strings.NewReader(`{}`))
				rec := httptest.NewRecorder()
				HandleAdminCampaigns(svc)(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				assertErrorCode(t, rec, tc.wantCode)
			})
		}
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		svc := &fakeAdminService{campaignErr: domain.ErrProductNotFound}
		req := httptest.NewRequest(http.MethodPost, "/admin/campaigns", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		HandleAdminCampaigns(svc)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, rec, codeProductNotFound)
	})
}
