package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/cache"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
)

// CatalogService is the storefront's read-only window on the backend
// catalog, with a best-effort redis cache in front. A cache outage degrades
// to direct API calls, never to an error.
type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
}

type catalogService struct {
	api   storeapi.Client
	cache cache.Cache
	cfg   *config.CacheConfig
}

func NewCatalogService(api storeapi.Client, c cache.Cache, cfg *config.CacheConfig) CatalogService {
	return &catalogService{api: api, cache: c, cfg: cfg}
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		slog.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return &cached, nil
	}

	product, err := s.api.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.UpstreamError("Could not fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cfg.ProductTTL); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	key := cache.Key(cache.ProductListKeyPrefix, listKey(filter))

	var cached []models.Product

	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		slog.Warn("Product list cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return cached, nil
	}

	products, err := s.api.FetchProducts(ctx, filter)
	if err != nil {
		return nil, appErrors.UpstreamError("Could not fetch products").WithError(err)
	}

	if err := s.cache.Set(ctx, key, products, s.cfg.ProductTTL); err != nil {
		slog.Warn("Product list cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return products, nil
}

func (s *catalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	key := cache.Key(cache.CategoryKeyPrefix, strconv.FormatBool(activeOnly))

	var cached []models.Category

	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		slog.Warn("Category cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return cached, nil
	}

	categories, err := s.api.FetchCategories(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.UpstreamError("Could not fetch categories").WithError(err)
	}

	if err := s.cache.Set(ctx, key, categories, s.cfg.CategoryTTL); err != nil {
		slog.Warn("Category cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return categories, nil
}

func listKey(filter models.ProductFilter) string {
	return fmt.Sprintf("cat=%s:q=%s:active=%t:limit=%d", filter.CategoryID, filter.Search, filter.ActiveOnly, filter.Limit)
}
