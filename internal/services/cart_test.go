package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/pricing"
	service "github.com/aaravmahajanofficial/storefront-cart-service/internal/services"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func testProduct(id, price string) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  models.MultilingualText{EN: id},
		Price: dec(price),
	}
}

func setup(t *testing.T) (*mocks.CatalogService, *mocks.StoreAPI, service.CartService) {
	t.Helper()

	catalog := new(mocks.CatalogService)
	api := new(mocks.StoreAPI)
	sessions := service.NewSessionStore(30 * time.Minute)
	engine := pricing.NewEngine(pricing.DefaultTaxRate)

	return catalog, api, service.NewCartService(sessions, catalog, api, engine)
}

func fillCart(t *testing.T, catalog *mocks.CatalogService, svc service.CartService, sessionID string) {
	t.Helper()

	catalog.On("GetProduct", mock.Anything, "hammer").Return(testProduct("hammer", "10.00"), nil).Once()
	catalog.On("GetProduct", mock.Anything, "tape").Return(testProduct("tape", "5.50"), nil).Once()

	_, err := svc.AddItem(context.Background(), sessionID, "en", &models.AddItemRequest{ProductID: "hammer", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), sessionID, "en", &models.AddItemRequest{ProductID: "tape", Quantity: 1})
	require.NoError(t, err)
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		catalog, _, svc := setup(t)
		catalog.On("GetProduct", ctx, "hammer").Return(testProduct("hammer", "10.00"), nil).Once()

		// Act
		view, err := svc.AddItem(ctx, "sess-1", "en", &models.AddItemRequest{ProductID: "hammer", Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.ItemCount)
		assert.Equal(t, "hammer", view.Lines[0].DisplayName)
		assert.True(t, view.Totals.Subtotal.Equal(dec("20.00")))
		catalog.AssertExpectations(t)
	})

	t.Run("Failure - Catalog Error Leaves Cart Untouched", func(t *testing.T) {
		// Arrange
		catalog, _, svc := setup(t)
		upstream := appErrors.UpstreamError("Could not fetch product")
		catalog.On("GetProduct", ctx, "hammer").Return(nil, upstream).Once()

		// Act
		view, err := svc.AddItem(ctx, "sess-1", "en", &models.AddItemRequest{ProductID: "hammer", Quantity: 2})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, view)
		assert.Equal(t, 0, svc.ItemCount(ctx, "sess-1"))
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		// Arrange
		catalog, _, svc := setup(t)
		catalog.On("GetProduct", ctx, "hammer").Return(testProduct("hammer", "10.00"), nil).Once()

		// Act
		_, err := svc.AddItem(ctx, "sess-1", "en", &models.AddItemRequest{ProductID: "hammer", Quantity: 0})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		catalog, _, svc := setup(t)
		catalog.On("GetProduct", ctx, "hammer").Return(testProduct("hammer", "10.00"), nil).Once()

		_, err := svc.AddItem(ctx, "sess-a", "en", &models.AddItemRequest{ProductID: "hammer", Quantity: 3})
		require.NoError(t, err)

		assert.Equal(t, 3, svc.ItemCount(ctx, "sess-a"))
		assert.Equal(t, 0, svc.ItemCount(ctx, "sess-b"))
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Zero Removes Line And Updates Count", func(t *testing.T) {
		// Arrange
		catalog, _, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		// Act
		view, err := svc.UpdateQuantity(ctx, "sess-1", "en", "hammer", &models.UpdateQuantityRequest{Quantity: 0})

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "tape", view.Lines[0].ProductID)
		assert.Equal(t, 1, view.ItemCount)
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.UpdateQuantity(ctx, "sess-1", "en", "hammer", &models.UpdateQuantityRequest{Quantity: 2})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestApplyDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		discount := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
		api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(discount, nil).Once()

		// Act: codes are case-insensitive.
		view, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "welcome10"})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, view.Discount)
		assert.Equal(t, "WELCOME10", view.Discount.Code)
		assert.True(t, view.Totals.DiscountAmount.Equal(dec("2.55")))
		assert.True(t, view.Totals.Total.Equal(dec("28.31")))
		api.AssertExpectations(t)
	})

	t.Run("Rejection Keeps Previously Applied Discount", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		old := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
		api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(old, nil).Once()
		_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
		require.NoError(t, err)

		rejection := &storeapi.DiscountRejection{Reason: storeapi.ReasonExpired, Detail: "Discount code has expired"}
		api.On("ValidateDiscount", ctx, "OLDCODE", mock.Anything).Return(nil, rejection).Once()

		// Act
		_, err = svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "OLDCODE"})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDiscountRejected, appErr.Code)
		assert.Equal(t, storeapi.ReasonExpired, appErr.Detail)

		view, err := svc.GetCart(ctx, "sess-1", "en")
		require.NoError(t, err)
		require.NotNil(t, view.Discount)
		assert.Equal(t, "WELCOME10", view.Discount.Code)
	})

	t.Run("Network Failure Keeps Previously Applied Discount", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		old := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
		api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(old, nil).Once()
		_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
		require.NoError(t, err)

		api.On("ValidateDiscount", ctx, "NEWCODE", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		// Act
		_, err = svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "NEWCODE"})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)

		view, _ := svc.GetCart(ctx, "sess-1", "en")
		require.NotNil(t, view.Discount)
		assert.Equal(t, "WELCOME10", view.Discount.Code)
	})

	t.Run("Reapplying Replaces Previous Code", func(t *testing.T) {
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		first := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
		second := &models.Discount{Code: "FIVER", Type: models.DiscountFixed, Value: dec("5.00")}
		api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(first, nil).Once()
		api.On("ValidateDiscount", ctx, "FIVER", mock.Anything).Return(second, nil).Once()

		_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
		require.NoError(t, err)
		view, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "FIVER"})
		require.NoError(t, err)

		assert.Equal(t, "FIVER", view.Discount.Code)
		assert.True(t, view.Totals.DiscountAmount.Equal(dec("5.00")))
	})

	t.Run("Applied Discount Below Minimum Zeroes Its Effect", func(t *testing.T) {
		// Arrange: discount qualifies at apply time, then the subtotal
		// drops under its minimum.
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		discount := &models.Discount{
			Code:           "BULK20",
			Type:           models.DiscountPercentage,
			Value:          dec("20"),
			MinOrderAmount: dec("20.00"),
		}
		api.On("ValidateDiscount", ctx, "BULK20", mock.Anything).Return(discount, nil).Once()

		_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "BULK20"})
		require.NoError(t, err)

		// Act: subtotal falls to 5.50, below the 20.00 minimum.
		view, err := svc.UpdateQuantity(ctx, "sess-1", "en", "hammer", &models.UpdateQuantityRequest{Quantity: 0})

		// Assert: the code stays registered but contributes nothing.
		require.NoError(t, err)
		require.NotNil(t, view.Discount)
		assert.True(t, view.Totals.DiscountAmount.IsZero())
		assert.False(t, view.Totals.DiscountApplied)
	})

	t.Run("Stale Validation After Clear Is Discarded", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		discount := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}

		entered := make(chan struct{})
		release := make(chan struct{})

		api.On("ValidateDiscount", mock.Anything, "WELCOME10", mock.Anything).
			Run(func(args mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(discount, nil).Once()

		var wg sync.WaitGroup
		wg.Add(1)

		var applyErr error

		go func() {
			defer wg.Done()
			_, applyErr = svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
		}()

		<-entered

		// Act: the cart is cleared while validation is in flight.
		_, err := svc.ClearCart(ctx, "sess-1", "en")
		require.NoError(t, err)

		close(release)
		wg.Wait()

		// Assert: the late result does not attach to the new cart.
		require.NoError(t, applyErr)
		view, _ := svc.GetCart(ctx, "sess-1", "en")
		assert.Nil(t, view.Discount)
	})
}

func TestRemoveDiscount(t *testing.T) {
	ctx := context.Background()

	catalog, api, svc := setup(t)
	fillCart(t, catalog, svc, "sess-1")

	discount := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
	api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(discount, nil).Once()

	_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
	require.NoError(t, err)

	view, err := svc.RemoveDiscount(ctx, "sess-1", "en")
	require.NoError(t, err)

	assert.Nil(t, view.Discount)
	assert.True(t, view.Totals.DiscountAmount.IsZero())
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()

	catalog, api, svc := setup(t)
	fillCart(t, catalog, svc, "sess-1")

	discount := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
	api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(discount, nil).Once()
	_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
	require.NoError(t, err)

	view, err := svc.ClearCart(ctx, "sess-1", "en")
	require.NoError(t, err)

	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.ItemCount)
	assert.Nil(t, view.Discount)
	assert.True(t, view.Totals.Total.IsZero())
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	checkoutReq := func() *models.CheckoutRequest {
		return &models.CheckoutRequest{
			Customer: models.CustomerInfo{
				Name:       "Jan Peeters",
				Email:      "jan.peeters@example.be",
				Phone:      "+32 470 12 34 56",
				Address:    "Stationsstraat 12",
				City:       "Gent",
				PostalCode: "9000",
			},
			PaymentMethod: "bancontact",
			Notes:         "<b>Leave at the back door</b>",
		}
	}

	t.Run("Success - Clears Cart And Discount", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		discount := &models.Discount{Code: "WELCOME10", Type: models.DiscountPercentage, Value: dec("10")}
		api.On("ValidateDiscount", ctx, "WELCOME10", mock.Anything).Return(discount, nil).Once()
		_, err := svc.ApplyDiscount(ctx, "sess-1", "en", &models.ApplyDiscountRequest{Code: "WELCOME10"})
		require.NoError(t, err)

		confirmation := &models.OrderConfirmation{OrderNumber: "ORD-20260831-AB12CD34", Status: "pending"}

		var submitted *storeapi.SubmitOrderRequest

		api.On("SubmitOrder", ctx, mock.AnythingOfType("*storeapi.SubmitOrderRequest")).
			Run(func(args mock.Arguments) {
				submitted = args.Get(1).(*storeapi.SubmitOrderRequest)
			}).
			Return(confirmation, nil).Once()

		// Act
		got, err := svc.Checkout(ctx, "sess-1", checkoutReq())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ORD-20260831-AB12CD34", got.OrderNumber)

		require.NotNil(t, submitted)
		require.Len(t, submitted.Items, 2)
		assert.Equal(t, "hammer", submitted.Items[0].ProductID)
		assert.Equal(t, 2, submitted.Items[0].Quantity)
		assert.Equal(t, "Belgium", submitted.Customer.Country)
		assert.Equal(t, "Leave at the back door", submitted.Notes)

		view, _ := svc.GetCart(ctx, "sess-1", "en")
		assert.Empty(t, view.Lines)
		assert.Nil(t, view.Discount)
		api.AssertExpectations(t)
	})

	t.Run("Failure - Cart Left Intact For Retry", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		api.On("SubmitOrder", ctx, mock.Anything).Return(nil, errors.New("gateway timeout")).Once()

		// Act
		_, err := svc.Checkout(ctx, "sess-1", checkoutReq())

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
		assert.Equal(t, 3, svc.ItemCount(ctx, "sess-1"))
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.Checkout(ctx, "sess-1", checkoutReq())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Second Submission While One Is In Flight Is Rejected", func(t *testing.T) {
		// Arrange
		catalog, api, svc := setup(t)
		fillCart(t, catalog, svc, "sess-1")

		confirmation := &models.OrderConfirmation{OrderNumber: "ORD-20260831-AB12CD34"}

		entered := make(chan struct{})
		release := make(chan struct{})

		api.On("SubmitOrder", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(confirmation, nil).Once()

		var wg sync.WaitGroup
		wg.Add(1)

		var firstErr error

		go func() {
			defer wg.Done()
			_, firstErr = svc.Checkout(ctx, "sess-1", checkoutReq())
		}()

		<-entered

		// Act
		_, secondErr := svc.Checkout(ctx, "sess-1", checkoutReq())

		close(release)
		wg.Wait()

		// Assert: exactly one submission went through.
		require.NoError(t, firstErr)
		appErr, ok := appErrors.IsAppError(secondErr)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
		api.AssertExpectations(t)
	})
}
