package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fieldops/internal/config"
	"fieldops/internal/database"
	"fieldops/internal/domain/discount"
	"fieldops/internal/domain/lead"
	"fieldops/internal/middleware"
	"fieldops/internal/modules/addon"
	"fieldops/internal/modules/quote"
	jwtsvc "fieldops/internal/pkg/jwt"
	"fieldops/internal/realtime"
	"fieldops/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	sqlxDB, err := database.ConnectSQLX(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("sqlx connection failed")
	}

	quoteRepo := repository.NewQuoteRepository(db)
	planRepo := repository.NewServicePlanRepository(db)
	addonRepo := repository.NewAddonRepository(db)
	settingsRepo := repository.NewPricingSettingsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := realtime.NewHub(logger.WithField("component", "hub"))
	wsHandler := realtime.NewWSHandler(hub, j, logger.WithField("component", "ws"))

	var discountHandler *discount.Handler
	var leadHandler *lead.Handler
	var quoteService *quote.Service
	if sqlxDB != nil {
		discountRepo := discount.NewRepository(sqlxDB)
		discountService := discount.NewService(discountRepo)
		discountHandler = discount.NewHandler(discountService)

		leadRepo := lead.NewRepository(sqlxDB)
		leadService := lead.NewService(leadRepo)
		leadHandler = lead.NewHandler(leadService)

		quoteService = quote.NewService(quoteRepo, planRepo, addonRepo, settingsRepo, discountService, leadRepo)
	} else {
		logger.Warn("running without postgres: lead and discount endpoints disabled")
		if err := repository.AutoMigrate(db); err != nil {
			logger.WithError(err).Fatal("auto-migrate failed")
		}
		quoteService = quote.NewService(quoteRepo, planRepo, addonRepo, settingsRepo, nil, nil)
	}
	quoteHandler := quote.NewHandler(quoteService, hub)

	addonService := addon.NewService(addonRepo)
	addonHandler := addon.NewHandler(addonService)

	if config.IsProd(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger.WithField("component", "http")))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ws", wsHandler.HandleWebSocket)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			quoteHandler.RegisterRoutes(protected)
			addonHandler.RegisterRoutes(protected)
			if discountHandler != nil {
				discount.RegisterRoutes(protected, discountHandler)
			}
			if leadHandler != nil {
				lead.RegisterRoutes(protected, leadHandler)
			}
		}
	}

	logger.WithField("port", cfg.Port).Info("starting API server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func newLogger(cfg *config.Config) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	if config.IsProd(cfg.AppEnv) {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l.WithField("service", "fieldops-api")
}
