package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medbook/config"
	"medbook/database/store"
	"medbook/handlers"
	"medbook/middleware"
	"medbook/routes"
	"medbook/services/api"
	"medbook/services/booking"
	"medbook/services/session"
	"medbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitializeLogger(cfg.Env)
	logger := utils.GetLogger()
	utils.SetJWTSecret(cfg.JWTSecret)

	// Session store: redis survives restarts, memory backs fixture runs.
	var kv store.KVStore
	switch cfg.StoreBackend {
	case "redis":
		redisStore, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize redis session store: %v", err)
		}
		defer redisStore.Close()
		kv = redisStore
	default:
		kv = store.NewMemoryStore()
	}

	// API client: fixture or remote, behind one interface.
	var apiClient api.Client
	switch cfg.APIMode {
	case "remote":
		apiClient = api.NewRemoteClient(cfg.APIBaseURL, cfg.APITimeout(), kv)
	default:
		apiClient = api.NewFixtureClient(api.FixtureConfig{
			Email:    cfg.FixtureEmail,
			Password: cfg.FixturePassword,
			UserName: cfg.FixtureUserName,
			Latency:  api.LatencyFromBase(cfg.FixtureLatency()),
		})
	}

	sessionManager := session.NewSessionManager(apiClient, kv)
	bookingService := booking.NewBookingService(apiClient)

	// Restore a persisted session before serving traffic.
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 5*time.Second)
	sessionManager.Restore(restoreCtx)
	cancelRestore()
	logger.Sugar().Infof("main: session restored as %s", sessionManager.Snapshot().Status)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := &routes.HandlerBundle{
		Auth:     handlers.NewAuthHandler(sessionManager),
		Hospital: handlers.NewHospitalHandler(apiClient),
		Booking:  handlers.NewBookingHandler(bookingService, apiClient),
		Sessions: sessionManager,
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (api mode: %s)...", srv.Addr, cfg.APIMode)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
