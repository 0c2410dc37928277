package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"evorgs/internal/config"
	"evorgs/internal/database"
	"evorgs/internal/database/migrate"
	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/adscheduling"
	"evorgs/internal/domain/analytics"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/booking"
	"evorgs/internal/domain/catalog"
	"evorgs/internal/domain/chat"
	"evorgs/internal/domain/pos"
	"evorgs/internal/middleware"
	"evorgs/internal/notification"
	jwtsvc "evorgs/internal/pkg/jwt"
	"evorgs/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gin.SetMode(cfg.Server.Mode)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := migrate.Run(db); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	var mailer notification.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.Email)
	} else {
		mailer = notification.NewDevMailer(logger)
	}
	notifs := notification.NewService(mailer, logger)

	// Repositories
	authRepo := auth.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	adRepo := ads.NewRepository(db)
	scheduleRepo := adscheduling.NewRepository(db)
	posRepo := pos.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	analyticsRepo := analytics.NewRepository(db)

	// Chat fan-out: Redis bridge only when configured.
	hub := chat.NewHub()
	var bridge *chat.Bridge
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		bridge = chat.NewBridge(rdb, logger)
	}

	// Services
	authService := auth.NewService(authRepo, j, notifs, cfg.JWT.OTPPepper, logger)
	catalogService := catalog.NewService(catalogRepo)
	bookingService := booking.NewService(bookingRepo, catalogService, authService, notifs, logger)
	adService := ads.NewService(adRepo, logger)
	scheduleService := adscheduling.NewService(scheduleRepo, adRepo, logger)
	scheduleService.SetMaxRetries(cfg.Runner.MaxRetries)
	posService := pos.NewService(posRepo)
	chatService := chat.NewService(chatRepo, hub, bridge, logger)
	analyticsService := analytics.NewService(analyticsRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	adHandler := ads.NewHandler(adService)
	scheduleHandler := adscheduling.NewHandler(scheduleService)
	posHandler := pos.NewHandler(posService)
	chatHandler := chat.NewHandler(chatService, hub, j, logger)
	analyticsHandler := analytics.NewHandler(analyticsService)

	r := gin.New()
	r.Use(
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
		telemetry.Middleware(),
	)

	r.GET("/metrics", gin.WrapH(telemetry.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		adHandler.RegisterPublicRoutes(v1)
		chatHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			catalogHandler.RegisterVendorRoutes(protected)
			adHandler.RegisterVendorRoutes(protected)
			posHandler.RegisterVendorRoutes(protected)
			analyticsHandler.RegisterVendorRoutes(protected)

			catalogHandler.RegisterAdminRoutes(protected)
			adHandler.RegisterAdminRoutes(protected)
			scheduleHandler.RegisterAdminRoutes(protected)
			chatHandler.RegisterAdminRoutes(protected)
			analyticsHandler.RegisterAdminRoutes(protected)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if bridge != nil {
		if err := bridge.Subscribe(ctx, hub); err != nil {
			logger.Warn("chat bridge subscribe failed", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
