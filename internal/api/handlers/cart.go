package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/i18n"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	service "github.com/aaravmahajanofficial/storefront-cart-service/internal/services"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/utils"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cartService.GetCart(r.Context(), sessionID(w, r), i18n.FromRequest(r))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) ItemCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		count := h.cartService.ItemCount(r.Context(), sessionID(w, r))

		response.Success(w, http.StatusOK, map[string]int{"count": count})

	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sessionID(w, r), i18n.FromRequest(r), &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("product_id", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("product_id", req.ProductID), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")
			return
		}

		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sessionID(w, r), i18n.FromRequest(r), productID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID(w, r), i18n.FromRequest(r), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cartService.ClearCart(r.Context(), sessionID(w, r), i18n.FromRequest(r))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) ApplyDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ApplyDiscountRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.ApplyDiscount(r.Context(), sessionID(w, r), i18n.FromRequest(r), &req)
		if err != nil {
			logger.Warn("Discount code not applied", slog.String("code", req.Code), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) RemoveDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cartService.RemoveDiscount(r.Context(), sessionID(w, r), i18n.FromRequest(r))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}
