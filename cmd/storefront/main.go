package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maisonlux/storefront/internal/analytics"
	"github.com/maisonlux/storefront/internal/api/handlers"
	"github.com/maisonlux/storefront/internal/api/middleware"
	"github.com/maisonlux/storefront/internal/auth"
	"github.com/maisonlux/storefront/internal/cache"
	"github.com/maisonlux/storefront/internal/cart"
	"github.com/maisonlux/storefront/internal/catalog"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/events"
	"github.com/maisonlux/storefront/internal/health"
	"github.com/maisonlux/storefront/internal/lists"
	"github.com/maisonlux/storefront/internal/metrics"
	"github.com/maisonlux/storefront/internal/notify"
	"github.com/maisonlux/storefront/internal/repositories"
	"github.com/maisonlux/storefront/internal/storage"
	"github.com/maisonlux/storefront/internal/telemetry"
	"github.com/maisonlux/storefront/pkg/storeapi"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing setup
	if cfg.Telemetry.Enabled {
		shutdownTracing, err := telemetry.Setup(ctx, &cfg.Telemetry)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				slog.Error("⚠️ Error shutting down tracing", slog.String("error", err.Error()))
			}
		}()
	}

	// State store and product detail cache
	var (
		store       storage.Store
		detailCache cache.Cache
	)

	if cfg.RedisConnect.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConnect.Host + ":" + cfg.RedisConnect.Port,
			Username: cfg.RedisConnect.Username,
			Password: cfg.RedisConnect.Password,
			DB:       cfg.RedisConnect.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Error("❌ Error accessing the redis instance", "error", err.Error())
			os.Exit(1)
		}

		store = storage.NewRedisStore(redisClient)
		detailCache = cache.NewRedisCache(redisClient, cfg.Cart.DetailTTL)
	} else {
		store = storage.NewMemoryStore()
		detailCache = cache.NewMemoryCache(cfg.Cart.DetailTTL)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing state store", slog.String("error", err.Error()))
		}
	}()

	// Upstream store API client
	storeAPI := storeapi.NewClient(cfg.UpstreamAPI.BaseURL, cfg.UpstreamAPI.Timeout)

	// Product sources, tried in order: upstream API, then database
	sources := []catalog.ProductSource{storeAPI}

	if cfg.Database.Enabled {
		repos, productRepo, err := repositories.New(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the database", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			if err := repos.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		sources = append(sources, productRepo)
	}

	bus := events.NewBus()
	notifier := notify.NewLogNotifier(logger)

	catalogService := catalog.NewService(&cfg.Catalog, logger, bus, store, sources...)
	catalogService.Load(ctx)

	session := auth.NewSession(&cfg.Security, logger, storeAPI)
	resolver := cart.NewResolver(logger, detailCache, storeAPI, cfg.Cart.DetailTTL)

	// Headless shell: destructive actions proceed without a prompt.
	confirm := cart.ConfirmFunc(func(prompt string) bool { return true })

	cartService := cart.NewService(&cfg.Cart, logger, bus, store, session, resolver, notifier, confirm)
	cartService.Restore(ctx)

	tracker := analytics.NewTracker(&cfg.Analytics, logger, store, storeAPI)
	tracker.Restore(ctx)
	tracker.Flush(ctx)

	listsService := lists.NewService(logger, store)
	listsService.Restore(ctx)

	// Every engine event doubles as an analytics event.
	bus.SubscribeAll(func(evt events.Event) {
		tracker.Track(context.Background(), "engine", string(evt.Topic), nil)
	})

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	listsHandler := handlers.NewListsHandler(listsService)
	analyticsHandler := handlers.NewAnalyticsHandler(tracker)
	sessionMiddleware := middleware.NewSessionMiddleware(session)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StoreAPI: storeAPI})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("engine initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/catalog", catalogHandler.GetPage())
	routerMux.HandleFunc("GET /api/v1/catalog/counts", catalogHandler.GetCounts())
	routerMux.HandleFunc("POST /api/v1/catalog/category", catalogHandler.SetCategory())
	routerMux.HandleFunc("POST /api/v1/catalog/price", catalogHandler.SetPriceRange())
	routerMux.HandleFunc("POST /api/v1/catalog/brands", catalogHandler.ToggleBrand())
	routerMux.HandleFunc("POST /api/v1/catalog/colors", catalogHandler.ToggleColor())
	routerMux.HandleFunc("POST /api/v1/catalog/sizes", catalogHandler.ToggleSize())
	routerMux.HandleFunc("POST /api/v1/catalog/specials", catalogHandler.ToggleSpecial())
	routerMux.HandleFunc("POST /api/v1/catalog/sort", catalogHandler.SetSort())
	routerMux.HandleFunc("POST /api/v1/catalog/view", catalogHandler.SetView())
	routerMux.HandleFunc("POST /api/v1/catalog/page-size", catalogHandler.SetPageSize())
	routerMux.HandleFunc("POST /api/v1/catalog/search", catalogHandler.Search())
	routerMux.HandleFunc("POST /api/v1/catalog/page", catalogHandler.GoToPage())
	routerMux.HandleFunc("POST /api/v1/catalog/reset", catalogHandler.ResetFilters())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", sessionMiddleware.Attach(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}/restore", cartHandler.CancelRemoval())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.Clear())
	routerMux.HandleFunc("GET /api/v1/lists", listsHandler.GetLists())
	routerMux.HandleFunc("GET /api/v1/lists/{id}", listsHandler.GetMembership())
	routerMux.HandleFunc("POST /api/v1/lists/wishlist", listsHandler.ToggleWishlist())
	routerMux.HandleFunc("POST /api/v1/lists/compare", listsHandler.ToggleCompare())
	routerMux.HandleFunc("POST /api/v1/analytics/events", analyticsHandler.Track())
	routerMux.HandleFunc("POST /api/v1/analytics/flush", analyticsHandler.Flush())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "storefront")
	}

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

	// One last delivery attempt for queued analytics.
	tracker.Flush(context.Background())

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
