package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevdeklc/shopfast-ecommerce/internal/clock"
	"github.com/sevdeklc/shopfast-ecommerce/internal/domain"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, product domain.Product) error
}

type CampaignWriter interface {
	CreateCampaign(ctx context.Context, campaign domain.Campaign) error
}

// AdminService creates catalog entries. Read paths live in CatalogService.
type AdminService struct {
	products  ProductWriter
	campaigns CampaignWriter
	clock     clock.Clock
}

func NewAdminService(products ProductWriter, campaigns CampaignWriter, clk clock.Clock) *AdminService {
	return &AdminService{
		products:  products,
		campaigns: campaigns,
		clock:     clk,
	}
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	ImageURL      string
}

func (s *AdminService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.Price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if in.StockQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product := domain.Product{
		ID:            newID(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price.Round(priceScale),
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		Active:        true,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

type CreateCampaignInput struct {
	Name               string
	Description        string
	ProductID          string
	DiscountPercentage decimal.Decimal
	MaxQuantity        *int
	StartsAt           time.Time
	EndsAt             time.Time
}

func (s *AdminService) CreateCampaign(ctx context.Context, in CreateCampaignInput) (domain.Campaign, error) {
	if in.Name == "" {
		return domain.Campaign{}, domain.ErrCampaignNameRequired
	}
	if in.ProductID == "" {
		return domain.Campaign{}, domain.ErrInvalidID
	}
	if in.DiscountPercentage.IsNegative() || in.DiscountPercentage.GreaterThan(hundred) {
		return domain.Campaign{}, domain.ErrInvalidDiscount
	}
	if !in.EndsAt.After(in.StartsAt) {
		return domain.Campaign{}, domain.ErrInvalidCampaignWindow
	}
	if in.MaxQuantity != nil && *in.MaxQuantity <= 0 {
		return domain.Campaign{}, domain.ErrInvalidQuantity
	}

	campaign := domain.Campaign{
		ID:                 newID(),
		Name:               in.Name,
		Description:        in.Description,
		ProductID:          in.ProductID,
		DiscountPercentage: in.DiscountPercentage,
		MaxQuantity:        in.MaxQuantity,
		SoldQuantity:       0,
		StartsAt:           in.StartsAt,
		EndsAt:             in.EndsAt,
		Active:             true,
		CreatedAt:          s.clock.Now(),
	}

	if err := s.campaigns.CreateCampaign(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}
