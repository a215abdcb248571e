package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/cache"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/config"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/health"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/pricing"
	service "github.com/aaravmahajanofficial/storefront-cart-service/internal/services"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		slog.Error("❌ Invalid tax rate in config", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup (catalog cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr(),
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}
	cancelPing()

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	storeClient := storeapi.NewClient(cfg.StoreAPI.BaseURL, cfg.StoreAPI.Timeout)
	engine := pricing.NewEngine(taxRate)
	sessions := service.NewSessionStore(cfg.Session.TTL)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	sessions.StartJanitor(janitorCtx, cfg.Session.CleanupInterval)

	catalogService := service.NewCatalogService(storeClient, catalogCache, &cfg.Cache)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartService := service.NewCartService(sessions, catalogService, storeClient, engine)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(cartService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StoreAPI: storeClient})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("store_api", cfg.StoreAPI.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("GET /api/v1/cart/count", cartHandler.ItemCount())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/discount", cartHandler.ApplyDiscount())
	routerMux.HandleFunc("DELETE /api/v1/cart/discount", cartHandler.RemoveDiscount())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
