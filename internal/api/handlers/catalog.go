package handlers

import (
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/i18n"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/pricing"
	service "github.com/aaravmahajanofficial/storefront-cart-service/internal/services"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, productView(*product, i18n.FromRequest(r)))

	}
}

func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		filter := models.ProductFilter{
			CategoryID: query.Get("category_id"),
			Search:     query.Get("search"),
			ActiveOnly: query.Get("active_only") == "true",
		}

		if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
			filter.Limit = limit
		}

		products, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		lang := i18n.FromRequest(r)

		views := make([]models.ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, productView(p, lang))
		}

		response.Success(w, http.StatusOK, views)

	}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context(), r.URL.Query().Get("active_only") == "true")
		if err != nil {
			response.Error(w, err)
			return
		}

		lang := i18n.FromRequest(r)

		views := make([]models.CategoryView, 0, len(categories))
		for _, c := range categories {
			views = append(views, models.CategoryView{
				Category:    c,
				DisplayName: i18n.Resolve(c.Name, lang),
			})
		}

		response.Success(w, http.StatusOK, views)

	}
}

func productView(p models.Product, lang string) models.ProductView {
	return models.ProductView{
		Product:            p,
		DisplayName:        i18n.Resolve(p.Name, lang),
		DisplayDescription: i18n.Resolve(p.Description, lang),
		DisplayPrice:       pricing.FormatEUR(p.Price),
	}
}
