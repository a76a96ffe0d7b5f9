package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/piar/gateway/api/handler"
	"github.com/piar/gateway/internal/config"
	"github.com/piar/gateway/internal/infrastructure/monitor"
	pgInfra "github.com/piar/gateway/internal/infrastructure/postgres"
	"github.com/piar/gateway/internal/metrics"
	"github.com/piar/gateway/internal/middleware"
	"github.com/piar/gateway/internal/router"
	"github.com/piar/gateway/internal/services/lifecycle"
	"github.com/piar/gateway/pkg/httpcontext"
	"github.com/piar/gateway/pkg/logger"
	"github.com/piar/gateway/pkg/token"
	"github.com/piar/gateway/repository/postgres"
	authUC "github.com/piar/gateway/usecase/auth"
	callUC "github.com/piar/gateway/usecase/call"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	mon := monitor.New(pool, cfg.Health.Interval, zapLogger)
	if err := mon.Start(); err != nil {
		zapLogger.Fatal("health monitor failed to start", zap.Error(err))
	}
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	appMetrics := metrics.New()
	tokens := token.NewManager(cfg.JWT.Secret, token.WithIssuer(cfg.JWT.Issuer))

	userRepo := postgres.NewUserRepository(pool)
	callRepo := postgres.NewCallRepository(pool)

	authUseCase := authUC.New(userRepo, tokens, appMetrics, zapLogger)
	callUseCase := callUC.New(callRepo, appMetrics, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Execute: apiHandler.NewExecuteHandler(callUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	if cfg.HTTP.EnableMetrics {
		handlers.Metrics = appMetrics.Handler()
	}

	authMiddleware := middleware.JWTAuth(tokens, zapLogger)
	r := router.New(handlers, authMiddleware)

	handler := middleware.Recovery(zapLogger)(r.Handler)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)

	server := &fasthttp.Server{
		Handler:       handler,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		IdleTimeout:   cfg.HTTP.IdleTimeout,
		MaxConnsPerIP: cfg.HTTP.MaxConn,
		Name:          cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
