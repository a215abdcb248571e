package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/i18n"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/pricing"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
	"github.com/microcosm-cc/bluemonday"
)

// CartService owns the per-session cart ledger and discount state. Totals
// are recomputed from the ledger on every read and never stored.
type CartService interface {
	GetCart(ctx context.Context, sessionID, lang string) (*models.CartView, error)
	ItemCount(ctx context.Context, sessionID string) int
	AddItem(ctx context.Context, sessionID, lang string, req *models.AddItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, lang, productID string, req *models.UpdateQuantityRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, sessionID, lang, productID string) (*models.CartView, error)
	ClearCart(ctx context.Context, sessionID, lang string) (*models.CartView, error)
	ApplyDiscount(ctx context.Context, sessionID, lang string, req *models.ApplyDiscountRequest) (*models.CartView, error)
	RemoveDiscount(ctx context.Context, sessionID, lang string) (*models.CartView, error)
	Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.OrderConfirmation, error)
}

type cartService struct {
	sessions  *SessionStore
	catalog   CatalogService
	api       storeapi.Client
	engine    *pricing.Engine
	sanitizer *bluemonday.Policy
}

func NewCartService(sessions *SessionStore, catalog CatalogService, api storeapi.Client, engine *pricing.Engine) CartService {
	return &cartService{
		sessions:  sessions,
		catalog:   catalog,
		api:       api,
		engine:    engine,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// buildView derives the full cart response. Caller holds the session lock.
func (s *cartService) buildView(sess *cartSession, lang string) *models.CartView {
	lines := sess.ledger.Lines()
	breakdown := s.engine.ComputeTotals(lines, sess.discount)
	rounded := pricing.Round(breakdown)

	lineViews := make([]models.CartLineView, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.LineTotal()
		lineViews = append(lineViews, models.CartLineView{
			ProductID:        line.Product.ID,
			Name:             line.Product.Name,
			DisplayName:      i18n.Resolve(line.Product.Name, lang),
			UnitPrice:        line.Product.Price,
			Quantity:         line.Quantity,
			LineTotal:        lineTotal,
			DisplayUnitPrice: pricing.FormatEUR(line.Product.Price),
			DisplayLineTotal: pricing.FormatEUR(lineTotal.Round(2)),
		})
	}

	return &models.CartView{
		SessionID: sess.id,
		Lines:     lineViews,
		ItemCount: sess.ledger.ItemCount(),
		Discount:  sess.discount,
		Totals:    rounded,
		Display:   pricing.Display(rounded),
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.buildView(sess, lang), nil
}

func (s *cartService) ItemCount(ctx context.Context, sessionID string) int {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.ledger.ItemCount()
}

func (s *cartService) AddItem(ctx context.Context, sessionID, lang string, req *models.AddItemRequest) (*models.CartView, error) {
	// Snapshot the product first; the ledger mutation itself never waits on
	// the network.
	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.ledger.Add(*product, req.Quantity); err != nil {
		return nil, appErrors.ValidationError("Quantity must be a positive integer").WithError(err)
	}

	metrics.ObserveCartMutation("add")

	return s.buildView(sess, lang), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, lang, productID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ledger.UpdateQuantity(productID, req.Quantity) {
		return nil, appErrors.NotFoundError("Item not found in the cart")
	}

	metrics.ObserveCartMutation("update")

	return s.buildView(sess, lang), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, lang, productID string) (*models.CartView, error) {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Removing an absent product is a no-op, not an error.
	sess.ledger.Remove(productID)

	metrics.ObserveCartMutation("remove")

	return s.buildView(sess, lang), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.clearLocked(sess)

	metrics.ObserveCartMutation("clear")

	return s.buildView(sess, lang), nil
}

// clearLocked empties the ledger, drops any applied discount and bumps the
// epoch so in-flight validations or submissions cannot apply to the new
// cart. Caller holds the session lock.
func (s *cartService) clearLocked(sess *cartSession) {
	sess.ledger.Clear()
	sess.discount = nil
	sess.epoch++
}

func (s *cartService) ApplyDiscount(ctx context.Context, sessionID, lang string, req *models.ApplyDiscountRequest) (*models.CartView, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, appErrors.ValidationError("Discount code is required")
	}

	sess := s.sessions.get(sessionID)

	sess.mu.Lock()

	if sess.validating {
		sess.mu.Unlock()

		return nil, appErrors.ConflictError("A discount code is already being validated")
	}

	sess.validating = true
	epoch := sess.epoch
	subtotal := sess.ledger.Subtotal()
	sess.mu.Unlock()

	discount, err := s.api.ValidateDiscount(ctx, code, subtotal)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.validating = false

	if err != nil {
		// A failed attempt leaves any previously applied discount in place.
		var rejection *storeapi.DiscountRejection
		if errors.As(err, &rejection) {
			metrics.ObserveDiscountOutcome(rejection.Reason)

			return nil, appErrors.DiscountRejectedError("Discount code was rejected", rejection.Reason).WithError(err)
		}

		metrics.ObserveDiscountOutcome("error")

		return nil, appErrors.UpstreamError("Could not validate discount code").WithError(err)
	}

	if sess.epoch != epoch {
		// The cart was cleared while the validation was in flight; the
		// result no longer refers to this cart.
		slog.Info("Discarding stale discount validation", slog.String("code", code), slog.String("session_id", sessionID))

		return s.buildView(sess, lang), nil
	}

	// Applying a new code replaces any previous one.
	sess.discount = discount

	metrics.ObserveDiscountOutcome("applied")

	return s.buildView(sess, lang), nil
}

func (s *cartService) RemoveDiscount(ctx context.Context, sessionID, lang string) (*models.CartView, error) {
	sess := s.sessions.get(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.discount = nil

	return s.buildView(sess, lang), nil
}

func (s *cartService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.OrderConfirmation, error) {
	customer := req.Customer
	if customer.Country == "" {
		customer.Country = "Belgium"
	}

	notes := s.sanitizer.Sanitize(req.Notes)

	sess := s.sessions.get(sessionID)

	sess.mu.Lock()

	if sess.submitting {
		sess.mu.Unlock()

		return nil, appErrors.ConflictError("An order submission is already in progress")
	}

	if sess.ledger.IsEmpty() {
		sess.mu.Unlock()

		return nil, appErrors.BadRequestError("Cannot check out an empty cart")
	}

	lines := sess.ledger.Lines()
	items := make([]storeapi.OrderLine, 0, len(lines))

	for _, line := range lines {
		items = append(items, storeapi.OrderLine{ProductID: line.Product.ID, Quantity: line.Quantity})
	}

	sess.submitting = true
	epoch := sess.epoch
	sess.mu.Unlock()

	confirmation, err := s.api.SubmitOrder(ctx, &storeapi.SubmitOrderRequest{
		Items:         items,
		Customer:      customer,
		PaymentMethod: req.PaymentMethod,
		Notes:         notes,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.submitting = false

	if err != nil {
		// The cart stays intact so the customer can retry with identical
		// contents.
		metrics.ObserveOrderSubmission("failed")

		return nil, appErrors.UpstreamError("Order submission failed").WithError(err)
	}

	if sess.epoch == epoch {
		s.clearLocked(sess)
	}

	metrics.ObserveOrderSubmission("submitted")

	return confirmation, nil
}
