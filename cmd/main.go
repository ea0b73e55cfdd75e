package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mserebryaakov/handora-service/config"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/brand"
	"github.com/mserebryaakov/handora-service/internal/category"
	"github.com/mserebryaakov/handora-service/internal/health"
	"github.com/mserebryaakov/handora-service/internal/media"
	"github.com/mserebryaakov/handora-service/internal/order"
	"github.com/mserebryaakov/handora-service/internal/product"
	"github.com/mserebryaakov/handora-service/internal/request"
	"github.com/mserebryaakov/handora-service/internal/stats"
	"github.com/mserebryaakov/handora-service/internal/wishlist"
	"github.com/mserebryaakov/handora-service/pkg/httpserver"
	"github.com/mserebryaakov/handora-service/pkg/i18n"
	"github.com/mserebryaakov/handora-service/pkg/logger"
	"github.com/mserebryaakov/handora-service/pkg/postgres"
)

func main() {
	log := logger.NewLogger("debug", &logger.MainLogHook{})

	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	env, err := config.GetEnvironment()
	if err != nil {
		log.Fatal(err.Error())
	}

	log = logger.NewLogger(env.LogLvl, &logger.MainLogHook{})
	categoryLog := logger.NewLogger(env.LogLvl, &category.CategoryLogHook{})
	brandLog := logger.NewLogger(env.LogLvl, &brand.BrandLogHook{})
	productLog := logger.NewLogger(env.LogLvl, &product.ProductLogHook{})
	orderLog := logger.NewLogger(env.LogLvl, &order.OrderLogHook{})
	wishlistLog := logger.NewLogger(env.LogLvl, &wishlist.WishlistLogHook{})
	statsLog := logger.NewLogger(env.LogLvl, &stats.StatsLogHook{})
	mediaLog := logger.NewLogger(env.LogLvl, &media.MediaLogHook{})
	authLog := logger.NewLogger(env.LogLvl, &auth.AuthLogHook{})
	httpLog := logger.NewLogger(env.LogLvl, &health.HealthLogHook{})
	dbLog := logger.NewLogger(env.LogLvl, &logger.PrefixHook{Prefix: "Postgres"})

	if err := i18n.SetLanguage(cfg.Shop.Language); err != nil {
		log.Fatalf("failed to set language: %v", err)
	}
	decimal.MarshalJSONWithoutQuotes = true
	if err := request.RegisterValidators(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	db, err := postgres.NewConnection(postgres.Config{
		Host:               env.PgHost,
		Port:               env.PgPort,
		Username:           env.PgUser,
		Password:           env.PgPassword,
		DBName:             env.PgDbName,
		SSLMode:            env.SSLMode,
		TimeZone:           env.TimeZone,
		MaxOpenConns:       cfg.Database.MaxOpen,
		MaxIdleConns:       cfg.Database.MaxIdle,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}, dbLog)
	if err != nil {
		log.Fatalf("failed connection to db: %v", err)
	}

	if err := runMigrations(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	images, err := media.NewLocalStore(media.Config{
		Dir:        cfg.Uploads.Dir,
		URLPrefix:  cfg.Uploads.URLPrefix,
		MaxSize:    cfg.Uploads.MaxSize,
		AllowedExt: cfg.Uploads.AllowedExt,
	}, mediaLog)
	if err != nil {
		log.Fatalf("failed to init media store: %v", err)
	}

	categoryService := category.NewService(category.NewStorage(db), categoryLog)
	brandService := brand.NewService(brand.NewStorage(db), brandLog)
	productService := product.NewService(product.NewStorage(db), images, cfg.Shop.SuggestionProductIDs, productLog)
	orderService := order.NewService(order.NewStorage(db), cfg.Shop.Currency, orderLog)
	wishlistService := wishlist.NewService(wishlist.NewStorage(db), wishlistLog)
	statsService := stats.NewService(stats.NewStorage(db), cfg.Shop.LowStockThreshold, statsLog)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := health.NewMetrics(registry)

	if env.LogLvl != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), health.RequestLogger(httpLog), metrics.Middleware())
	router.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)

	health.NewHandler(sqlDB, registry, httpLog).Register(router)

	authMiddleware := auth.NewMiddleware(auth.NewVerifier(env.JWTSecret), authLog)
	api := router.Group(cfg.Server.APIPrefix)
	user := api.Group("", authMiddleware.Authenticate())
	admin := api.Group("/admin", authMiddleware.Authenticate(), authMiddleware.RequireAdmin())

	publicLimits := request.Limits{Default: cfg.Pagination.PublicDefault, Max: cfg.Pagination.PublicMax}
	adminLimits := request.Limits{Default: cfg.Pagination.AdminDefault, Max: cfg.Pagination.AdminMax}
	categoryLimits := request.Limits{Default: cfg.Pagination.CategoryDefault, Max: cfg.Pagination.CategoryDefault}

	category.NewHandler(categoryService, categoryLog, categoryLimits).Register(api, admin)
	brand.NewHandler(brandService, brandLog).Register(api, admin)
	product.NewHandler(productService, productLog, product.Limits{Public: publicLimits, Admin: adminLimits}).Register(api, admin)
	order.NewHandler(orderService, orderLog, adminLimits).Register(user, admin)
	wishlist.NewHandler(wishlistService, wishlistLog).Register(user)
	stats.NewHandler(statsService, statsLog).Register(admin)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", health.RequestIDHeader},
		ExposedHeaders:   []string{health.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(router)

	server := new(httpserver.Server)

	go func() {
		if err := server.Run(cfg.Server.Port, handler, httpserver.Options{
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}); err != nil {
			log.Fatalf("Failed running server %v", err)
		}
	}()
	log.Infof("listening on %s", cfg.Server.Port)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	oscall := <-interrupt
	log.Infof("Shutdown server, %s", oscall)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Error occured on server shutting down: %v", err)
	}
	if err := postgres.Close(db); err != nil {
		log.Errorf("Error occured on closing db: %v", err)
	}
}

// runMigrations creates tables in dependency order.
func runMigrations(db *gorm.DB) error {
	steps := []func(*gorm.DB) error{
		category.RunSchemaMigration,
		brand.RunSchemaMigration,
		product.RunSchemaMigration,
		order.RunSchemaMigration,
		wishlist.RunSchemaMigration,
	}
	for _, step := range steps {
		if err := step(db); err != nil {
			return err
		}
	}
	return nil
}
