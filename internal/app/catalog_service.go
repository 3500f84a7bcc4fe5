package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/clock"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

type ProductCatalog interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListInStock(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type CampaignCatalog interface {
	ResolveActive(ctx context.Context, productIDs []string, now time.Time) (map[string]domain.Campaign, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.Campaign, error)
	GetByID(ctx context.Context, id string) (domain.Campaign, error)
}

// CatalogService serves read-only product and campaign views, annotating
// products with their currently-active discount.
type CatalogService struct {
	products  ProductCatalog
	campaigns CampaignCatalog
	clock     clock.Clock
}

func NewCatalogService(products ProductCatalog, campaigns CampaignCatalog, clk clock.Clock) *CatalogService {
	return &CatalogService{
		products:  products,
		campaigns: campaigns,
		clock:     clk,
	}
}

// ProductOffer is a product together with its active campaign, if any, and
// the unit price a buyer would pay right now.
type ProductOffer struct {
	Product   domain.Product
	Campaign  *domain.Campaign
	UnitPrice decimal.Decimal
}

// CampaignOffer is a campaign joined with its product and the resulting
// discounted price.
type CampaignOffer struct {
	Campaign        domain.Campaign
	Product         domain.Product
	DiscountedPrice decimal.Decimal
}

type ListProductsInput struct {
	Category    string
	InStockOnly bool
}

func (s *CatalogService) ListProducts(ctx context.Context, in ListProductsInput) ([]ProductOffer, error) {
	var (
		products []domain.Product
		err      error
	)
	switch {
	case in.Category != "":
		products, err = s.products.ListByCategory(ctx, in.Category)
	case in.InStockOnly:
		products, err = s.products.ListInStock(ctx)
	default:
		products, err = s.products.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, products)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (ProductOffer, error) {
	if id == "" {
		return ProductOffer{}, domain.ErrInvalidID
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return ProductOffer{}, err
	}
	offers, err := s.annotate(ctx, []domain.Product{product})
	if err != nil {
		return ProductOffer{}, err
	}
	return offers[0], nil
}

func (s *CatalogService) ListActiveCampaigns(ctx context.Context) ([]CampaignOffer, error) {
	now := s.clock.Now()
	campaigns, err := s.campaigns.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}
	return s.joinProducts(ctx, campaigns)
}

func (s *CatalogService) GetCampaign(ctx context.Context, id string) (CampaignOffer, error) {
	if id == "" {
		return CampaignOffer{}, domain.ErrInvalidID
	}
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return CampaignOffer{}, err
	}
	offers, err := s.joinProducts(ctx, []domain.Campaign{campaign})
	if err != nil {
		return CampaignOffer{}, err
	}
	return offers[0], nil
}

// annotate resolves active campaigns for the whole product set in one
// batched lookup instead of one query per product.
func (s *CatalogService) annotate(ctx context.Context, products []domain.Product) ([]ProductOffer, error) {
	now := s.clock.Now()
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	active := map[string]domain.Campaign{}
	if len(ids) > 0 {
		var err error
		active, err = s.campaigns.ResolveActive(ctx, ids, now)
		if err != nil {
			return nil, err
		}
	}

	offers := make([]ProductOffer, 0, len(products))
	for _, p := range products {
		var campaign *domain.Campaign
		if c, ok := active[p.ID]; ok {
			campaign = &c
		}
		offers = append(offers, ProductOffer{
			Product:   p,
			Campaign:  campaign,
			UnitPrice: PriceLine(p, campaign, now),
		})
	}
	return offers, nil
}

func (s *CatalogService) joinProducts(ctx context.Context, campaigns []domain.Campaign) ([]CampaignOffer, error) {
	now := s.clock.Now()
	ids := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	offers := make([]CampaignOffer, 0, len(campaigns))
	for _, c := range campaigns {
		product, ok := byID[c.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, c.ProductID)
		}
		offers = append(offers, CampaignOffer{
			Campaign:        c,
			Product:         product,
			DiscountedPrice: PriceLine(product, &c, now),
		})
	}
	return offers, nil
}
