package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	sheetapp "github.com/storefront/backend/internal/application/catalogsheet"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/assets"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/catalogdata"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/storefront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Storefront Backend API
//	@version		1.0
//	@description	Catalog browsing and printable catalog sheet generation

//	@contact.name	Storefront
//	@contact.url	https://wa.me/5561982131123

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// OTEL log export wraps the console core, so it is set up before the logger
	var extraCores []zapcore.Core
	var logProvider *telemetry.LoggerProvider
	if cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled {
		logProvider, err = telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
		if err != nil {
			panic("Failed to initialize log exporter: " + err.Error())
		}
		extraCores = append(extraCores, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	}

	log, err := logger.New(logger.FromLogConfig(cfg.Log), extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	profiler, err := telemetry.NewProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
		if logProvider != nil {
			if err := logProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down log provider", zap.Error(err))
			}
		}
	}()

	sheetMetrics, err := telemetry.NewSheetMetrics(meterProvider.Meter("storefront/catalogsheet"))
	if err != nil {
		log.Fatal("Failed to register catalog sheet metrics", zap.Error(err))
	}

	// Catalog source
	items, db, err := newItemRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize catalog source", zap.Error(err))
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
	}

	// Image fetching
	fetcherOpts := []assets.Option{assets.WithLogger(log.Named("assets"))}
	if cfg.Storage.Enabled {
		objects, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log), storage.WithMaxObjectSize(cfg.Assets.MaxBytes))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		fetcherOpts = append(fetcherOpts, assets.WithObjectReader(objects))
		log.Info("Object storage enabled for s3:// image references", zap.String("bucket", objects.GetBucket()))
	}
	fetcher := assets.NewFetcher(assets.Config{
		BaseDir:      cfg.Assets.BaseDir,
		BaseURL:      cfg.Assets.BaseURL,
		Timeout:      cfg.Assets.FetchTimeout,
		MaxBytes:     cfg.Assets.MaxBytes,
		MaxDimension: cfg.Assets.MaxDimension,
		Quality:      cfg.Assets.JPEGQuality,
	}, fetcherOpts...)

	// Generation lock
	lock, err := cache.NewLockFactory(cfg.Redis, cache.WithLogger(log)).CreateLock()
	if err != nil {
		log.Fatal("Failed to create generation lock", zap.Error(err))
	}
	defer func() {
		if err := lock.Close(); err != nil {
			log.Error("Error closing generation lock", zap.Error(err))
		}
	}()

	// Application services
	catalogService := catalogapp.NewCatalogService(items,
		catalogapp.WithContactNumber(cfg.Catalog.ContactNumber),
		catalogapp.WithLogger(log),
	)
	assembler := sheetapp.NewAssembler(fetcher,
		sheetapp.WithConcurrency(cfg.Assets.FetchConcurrency),
		sheetapp.WithDocumentInfo(printing.DocumentInfo{Title: cfg.Sheet.Title, Creator: cfg.App.Name}),
		sheetapp.WithEngineOptions(printing.WithLogger(log.Named("printing"))),
		sheetapp.WithMetrics(sheetMetrics),
		sheetapp.WithAssemblerLogger(log),
	)
	sheetService := sheetapp.NewService(items, assembler, lock, sheetapp.Settings{
		Timeout:  cfg.Sheet.Timeout,
		LockTTL:  cfg.Sheet.LockTTL,
		Location: cfg.Sheet.Location(),
	}, sheetapp.WithLogger(log), sheetapp.WithServiceMetrics(sheetMetrics))

	// HTTP handlers
	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, cfg.Catalog.Source, pinger)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	sheetHandler := handler.NewSheetHandler(sheetService, handler.WithSheetLogger(log))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. Recovery and RequestID so every later log line carries the ID
	// 2. Access log
	// 3. Tracing, metrics and profiling labels
	// 4. Security headers and CORS
	// 5. Rate limiting (if enabled)
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID(log))
	engine.Use(logger.GinMiddleware(log, logger.WithSkipPaths("/health")))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
			SkipPaths:   []string{"/health"},
		}))
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.MetricsEnabled,
	}))
	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = append(cfg.HTTP.CORSAllowHeaders, "Last-Event-ID", "Cache-Control")
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)
	engine.HEAD("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:    cfg.Swagger.Enabled,
				AllowedIPs: cfg.Swagger.AllowedIPs,
			}),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.CatalogRoutes(catalogHandler, sheetHandler)).
		Register(router.SystemRoutes(systemHandler)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newItemRepository returns the configured catalog source. The database is
// returned so the caller can close it and health checks can ping it; it is
// nil for the static catalog.
func newItemRepository(cfg *config.Config, log *zap.Logger) (catalog.ItemRepository, *persistence.Database, error) {
	if cfg.Catalog.Source != config.CatalogSourceDatabase {
		repo, err := catalogdata.NewDefaultRepository()
		if err != nil {
			return nil, nil, err
		}
		log.Info("Serving the embedded static catalog")
		return repo, nil, nil
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
		persistence.WithTelemetry(cfg.Telemetry),
	)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connected successfully")
	return persistence.NewGormItemRepository(db.DB), db, nil
}
