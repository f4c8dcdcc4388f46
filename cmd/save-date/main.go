package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/savedate/save-date/docs"
	"github.com/savedate/save-date/internal/api/handlers"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/cache"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/config"
	"github.com/savedate/save-date/internal/health"
	"github.com/savedate/save-date/internal/metrics"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/scheduler"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/telemetry"
	"github.com/savedate/save-date/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Save Date API
//	@version					1.0
//	@description				Label printing and expiry alerts for food-service kitchens.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.OTel, health.Version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer productCache.Close()

	sweepLocation, err := time.LoadLocation(cfg.Sweep.Timezone)
	if err != nil {
		slog.Error("❌ Invalid sweep timezone", slog.String("timezone", cfg.Sweep.Timezone), slog.String("error", err.Error()))
		os.Exit(1)
	}

	clk := clock.New()
	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName,
		sendgrid.WithBaseURL(cfg.SendGrid.BaseURL))
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg, clk)

	userService := service.NewUserService(repos.User, repos.Tenant, rateLimiter, jwtKey, tokenTTL, clk)
	categoryService := service.NewCategoryService(repos.Category, productCache)
	productService := service.NewProductService(repos.Product, repos.Category, productCache)
	alertService := service.NewAlertService(repos.Product, repos.Print, repos.Alert, clk)
	dashboardService := service.NewDashboardService(repos.Dashboard, clk)
	notificationService := service.NewNotificationService(repos.Notification, repos.Subscription, repos.Category, emailService, clk)
	sweepService := service.NewSweepService(repos.Product, repos.Subscription, repository.NewLeaseRepo(redisClient), notificationService, clk, cfg.Sweep)

	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	alertHandler := handlers.NewAlertHandler(alertService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthChecker, err := health.NewHealthHandler(cfg, sweepService)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", health.Version))

	auth := authMiddleware.Authenticate
	admin := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(models.RoleAdmin, next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users", admin(userHandler.CreateUser()))
	routerMux.HandleFunc("GET /api/v1/users/profile", auth(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/categories", admin(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/categories", auth(categoryHandler.ListCategories()))
	routerMux.HandleFunc("PATCH /api/v1/categories/{id}", admin(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", auth(productHandler.GetProduct()))
	routerMux.HandleFunc("GET /api/v1/products", auth(productHandler.ListProducts()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/prints", auth(alertHandler.Print()))
	routerMux.HandleFunc("GET /api/v1/alerts", auth(alertHandler.ListPending()))
	routerMux.HandleFunc("POST /api/v1/alerts/{id}/discard", auth(alertHandler.Discard()))
	routerMux.HandleFunc("POST /api/v1/alerts/{id}/resolve", auth(alertHandler.Resolve()))
	routerMux.HandleFunc("DELETE /api/v1/alerts/{id}", admin(alertHandler.Delete()))
	routerMux.HandleFunc("GET /api/v1/dashboard", auth(dashboardHandler.Summary()))
	routerMux.HandleFunc("GET /api/v1/notifications", auth(notificationHandler.ListNotifications()))
	routerMux.HandleFunc("POST /api/v1/notifications/subscriptions", auth(notificationHandler.Subscribe()))
	routerMux.HandleFunc("GET /api/v1/notifications/subscriptions", auth(notificationHandler.ListSubscriptions()))
	routerMux.HandleFunc("DELETE /api/v1/notifications/subscriptions/{id}", auth(notificationHandler.Unsubscribe()))
	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler) // must wrap the mux directly, r.Pattern is set on the request it receives
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Sweep.Enabled {
		daily := &scheduler.Daily{
			Name:     "expiry-sweep",
			Hour:     cfg.Sweep.Hour,
			Minute:   cfg.Sweep.Minute,
			Location: sweepLocation,
			Clock:    clk,
			Logger:   logger,
			Job: func(ctx context.Context) error {
				_, err := sweepService.Run(ctx)
				return err
			},
		}

		go daily.Start(ctx)
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}
}
