package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	service "github.com/aaravmahajanofficial/storefront-cart-service/internal/services"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/utils"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCheckoutHandler(cartService service.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// Customer fields are checked here, before any call to the backend.
		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		confirmation, err := h.cartService.Checkout(r.Context(), sessionID(w, r), &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order submitted", slog.String("order_number", confirmation.OrderNumber))
		response.Success(w, http.StatusCreated, confirmation)

	}
}
