package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type StoreAPI struct {
	mock.Mock
}

func (m *StoreAPI) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *StoreAPI) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *StoreAPI) FetchCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	args := m.Called(ctx, activeOnly)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *StoreAPI) ValidateDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*models.Discount, error) {
	args := m.Called(ctx, code, subtotal)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Discount), args.Error(1)
}

func (m *StoreAPI) SubmitOrder(ctx context.Context, req *storeapi.SubmitOrderRequest) (*models.OrderConfirmation, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderConfirmation), args.Error(1)
}

func (m *StoreAPI) Ping(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
