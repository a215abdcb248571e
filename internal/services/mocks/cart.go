package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) ItemCount(ctx context.Context, sessionID string) int {
	args := m.Called(ctx, sessionID)

	return args.Int(0)
}

func (m *CartService) AddItem(ctx context.Context, sessionID, lang string, req *models.AddItemRequest) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, sessionID, lang, productID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang, productID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID, lang, productID string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) ApplyDiscount(ctx context.Context, sessionID, lang string, req *models.ApplyDiscountRequest) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) RemoveDiscount(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, lang)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func (m *CartService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.OrderConfirmation, error) {
	args := m.Called(ctx, sessionID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderConfirmation), args.Error(1)
}
