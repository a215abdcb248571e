package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	args := m.Called(ctx, activeOnly)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}
