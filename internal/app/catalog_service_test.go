package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/clock"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

func TestCatalogService_ListProducts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	active := []domain.Product{
		{ID: "prod-a", Name: "Keyboard", Price: price("100.00"), Category: "peripherals", StockQuantity: 10, Active: true},
		{ID: "prod-b", Name: "Desk", Price: price("250.00"), Category: "furniture", StockQuantity: 0, Active: true},
	}
	campaigns := []domain.Campaign{{
		ID:                 "camp-1",
		ProductID:          "prod-a",
		DiscountPercentage: price("10"),
		StartsAt:           now.Add(-time.Hour),
		EndsAt:             now.Add(time.Hour),
		Active:             true,
	}}

	catalog := &fakeCatalog{active: active}
	svc := NewCatalogService(catalog, &fakeCampaigns{campaigns: campaigns}, clock.NewFixed(now))

	t.Run("annotates products with active discount", func(t *testing.T) {
		offers, err := svc.ListProducts(context.Background(), ListProductsInput{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(offers) != 2 {
			t.Fatalf("expected 2 offers, got %d", len(offers))
		}
		if offers[0].Campaign == nil || offers[0].Campaign.ID != "camp-1" {
			t.Fatalf("expected prod-a to carry camp-1")
		}
		if !offers[0].UnitPrice.Equal(price("90.00")) {
			t.Fatalf("expected discounted 90.00, got %s", offers[0].UnitPrice)
		}
		if offers[1].Campaign != nil {
			t.Fatalf("expected prod-b without campaign")
		}
		if !offers[1].UnitPrice.Equal(price("250.00")) {
			t.Fatalf("expected list price 250.00, got %s", offers[1].UnitPrice)
		}
	})

	t.Run("category filter delegates to category listing", func(t *testing.T) {
		catalog.byCategory = map[string][]domain.Product{
			"furniture": {active[1]},
		}
		offers, err := svc.ListProducts(context.Background(), ListProductsInput{Category: "furniture"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(offers) != 1 || offers[0].Product.ID != "prod-b" {
			t.Fatalf("expected only prod-b, got %+v", offers)
		}
	})

	t.Run("in-stock filter delegates to stock listing", func(t *testing.T) {
		catalog.inStock = []domain.Product{active[0]}
		offers, err := svc.ListProducts(context.Background(), ListProductsInput{InStockOnly: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(offers) != 1 || offers[0].Product.ID != "prod-a" {
			t.Fatalf("expected only prod-a, got %+v", offers)
		}
	})

	t.Run("empty listing skips campaign lookup", func(t *testing.T) {
		empty := NewCatalogService(&fakeCatalog{}, &fakeCampaigns{}, clock.NewFixed(now))
		offers, err := empty.ListProducts(context.Background(), ListProductsInput{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(offers) != 0 {
			t.Fatalf("expected no offers, got %d", len(offers))
		}
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	catalog := &fakeCatalog{byID: map[string]domain.Product{
		"prod-a": {ID: "prod-a", Name: "Keyboard", Price: price("100.00"), Active: true},
	}}
	svc := NewCatalogService(catalog, &fakeCampaigns{}, clock.NewFixed(now))

	t.Run("returns offer for known product", func(t *testing.T) {
		offer, err := svc.GetProduct(context.Background(), "prod-a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if offer.Product.ID != "prod-a" {
			t.Fatalf("unexpected product %s", offer.Product.ID)
		}
		if !offer.UnitPrice.Equal(price("100.00")) {
			t.Fatalf("expected 100.00, got %s", offer.UnitPrice)
		}
	})

	t.Run("unknown product surfaces not found", func(t *testing.T) {
		if _, err := svc.GetProduct(context.Background(), "prod-missing"); !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("empty id rejected", func(t *testing.T) {
		if _, err := svc.GetProduct(context.Background(), ""); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestCatalogService_ListActiveCampaigns(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	catalog := &fakeCatalog{byID: map[string]domain.Product{
		"prod-a": {ID: "prod-a", Name: "Keyboard", Price: price("100.00"), Active: true},
	}}
	campaigns := &fakeCampaigns{campaigns: []domain.Campaign{
		{
			ID: "camp-live", ProductID: "prod-a", DiscountPercentage: price("25"),
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), Active: true,
		},
		{
			ID: "camp-over", ProductID: "prod-a", DiscountPercentage: price("50"),
			StartsAt: now.Add(-3 * time.Hour), EndsAt: now.Add(-2 * time.Hour), Active: true,
		},
	}}
	svc := NewCatalogService(catalog, campaigns, clock.NewFixed(now))

	offers, err := svc.ListActiveCampaigns(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 live campaign, got %d", len(offers))
	}
	if offers[0].Campaign.ID != "camp-live" {
		t.Fatalf("expected camp-live, got %s", offers[0].Campaign.ID)
	}
	if offers[0].Product.ID != "prod-a" {
		t.Fatalf("expected joined product prod-a, got %s", offers[0].Product.ID)
	}
	if !offers[0].DiscountedPrice.Equal(price("75.00")) {
		t.Fatalf("expected 75.00, got %s", offers[0].DiscountedPrice)
	}
}

func (f *fakeCampaigns) ListActive(_ context.Context, now time.Time) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range f.campaigns {
		if c.ActiveAt(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, id string) (domain.Campaign, error) {
	for _, c := range f.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Campaign{}, domain.ErrCampaignNotFound
}

type fakeCatalog struct {
	active     []domain.Product
	inStock    []domain.Product
	byCategory map[string][]domain.Product
	byID       map[string]domain.Product
}

func (f *fakeCatalog) ListActive(context.Context) ([]domain.Product, error) {
	return f.active, nil
}

func (f *fakeCatalog) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	return f.byCategory[category], nil
}

func (f *fakeCatalog) ListInStock(context.Context) ([]domain.Product, error) {
	return f.inStock, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
