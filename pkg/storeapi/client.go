// Package storeapi is the HTTP client for the hardware store backend: the
// catalog, discount validation and order submission live there. This service
// never persists any of that itself.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Discount rejection reasons, mirrored in the API error details.
const (
	ReasonNotFound        = "not-found"
	ReasonExpired         = "expired"
	ReasonUsageCapReached = "usage-cap-reached"
	ReasonBelowMinimum    = "below-minimum"
	ReasonInactive        = "inactive"
)

// ErrNotFound marks lookups for records the backend does not have.
var ErrNotFound = errors.New("not found")

// DiscountRejection is a definitive "no" from the backend for a discount
// code, as opposed to a transport failure.
type DiscountRejection struct {
	Reason string
	Detail string
}

func (e *DiscountRejection) Error() string {
	return fmt.Sprintf("discount rejected (%s): %s", e.Reason, e.Detail)
}

// OrderLine is the submission payload for one cart line; the backend prices
// it from its own catalog record.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SubmitOrderRequest struct {
	Items         []OrderLine         `json:"items"`
	Customer      models.CustomerInfo `json:"customer"`
	PaymentMethod string              `json:"payment_method"`
	Notes         string              `json:"notes"`
}

// Client defines the backend operations the storefront depends on.
type Client interface {
	FetchProduct(ctx context.Context, id string) (*models.Product, error)
	FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	FetchCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	ValidateDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*models.Discount, error)
	SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*models.OrderConfirmation, error)
	Ping(ctx context.Context) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// apiError is the backend's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, query url.Values, body, dest any) (int, string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, "", fmt.Errorf("failed to encode request body: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("store api request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read store api response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError

		_ = json.Unmarshal(data, &apiErr)

		return resp.StatusCode, apiErr.Detail, nil
	}

	if dest != nil {
		if err := json.Unmarshal(data, dest); err != nil {
			return resp.StatusCode, "", fmt.Errorf("failed to decode store api response: %w", err)
		}
	}

	return resp.StatusCode, "", nil
}

func (c *httpClient) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product

	status, detail, err := c.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &product)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	if status >= 400 {
		return nil, fmt.Errorf("store api returned %d fetching product %s: %s", status, id, detail)
	}

	return &product, nil
}

func (c *httpClient) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := url.Values{}

	if filter.CategoryID != "" {
		query.Set("category_id", filter.CategoryID)
	}

	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	if filter.ActiveOnly {
		query.Set("active_only", "true")
	}

	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var products []models.Product

	status, detail, err := c.doJSON(ctx, http.MethodGet, "/api/products", query, nil, &products)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		return nil, fmt.Errorf("store api returned %d listing products: %s", status, detail)
	}

	return products, nil
}

func (c *httpClient) FetchCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := url.Values{}

	if activeOnly {
		query.Set("active_only", "true")
	}

	var categories []models.Category

	status, detail, err := c.doJSON(ctx, http.MethodGet, "/api/categories", query, nil, &categories)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		return nil, fmt.Errorf("store api returned %d listing categories: %s", status, detail)
	}

	return categories, nil
}

func (c *httpClient) ValidateDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*models.Discount, error) {
	query := url.Values{}
	query.Set("order_amount", subtotal.String())

	var discount models.Discount

	status, detail, err := c.doJSON(ctx, http.MethodGet, "/api/discounts/validate/"+url.PathEscape(strings.ToUpper(code)), query, nil, &discount)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		return nil, &DiscountRejection{Reason: rejectionReason(status, detail), Detail: detail}
	}

	return &discount, nil
}

// rejectionReason maps the backend's status and detail text onto the fixed
// reason set. Inactive codes surface as not-found upstream, so unknown 400s
// default to inactive.
func rejectionReason(status int, detail string) string {
	if status == http.StatusNotFound {
		return ReasonNotFound
	}

	lower := strings.ToLower(detail)

	switch {
	case strings.Contains(lower, "expired"):
		return ReasonExpired
	case strings.Contains(lower, "maximum uses"):
		return ReasonUsageCapReached
	case strings.Contains(lower, "minimum order"):
		return ReasonBelowMinimum
	default:
		return ReasonInactive
	}
}

func (c *httpClient) SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*models.OrderConfirmation, error) {
	var confirmation models.OrderConfirmation

	status, detail, err := c.doJSON(ctx, http.MethodPost, "/api/orders", nil, req, &confirmation)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		return nil, fmt.Errorf("store api rejected order (%d): %s", status, detail)
	}

	return &confirmation, nil
}

// Ping checks that the backend answers at all; used by the health endpoint.
func (c *httpClient) Ping(ctx context.Context) error {
	status, detail, err := c.doJSON(ctx, http.MethodGet, "/api/", nil, nil, nil)
	if err != nil {
		return err
	}

	if status >= 400 {
		return fmt.Errorf("store api unhealthy (%d): %s", status, detail)
	}

	return nil
}
