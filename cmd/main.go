package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront_ai_server/api"
	"storefront_ai_server/config"
	handlers "storefront_ai_server/internal/api"
	"storefront_ai_server/internal/app"
	"storefront_ai_server/internal/deploy"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/logger"
	"storefront_ai_server/internal/store"
)

func main() {
	// --- Load .env file ---
	// Must run before viper reads the environment.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("error loading .env file", "error", err)
		} else {
			slog.Info(".env file not found, relying on system environment variables")
		}
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(os.Stdout, "storefront-ai-server", cfg.LogLevel)

	// --- Dependency Initialization ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	generator, err := app.NewGenerator(ctx, cfg, log)
	if err != nil {
		log.Error("cannot initialise generator", "error", err)
		os.Exit(1)
	}

	pages, err := store.New(cfg.PageStoreSize)
	if err != nil {
		log.Error("cannot initialise page store", "error", err)
		os.Exit(1)
	}

	deployer := deploy.NewDeployer(cfg.DeployCLIPath, cfg.DeployCLIArgs, log)
	if !deployer.Configured() {
		log.Info("DEPLOY_CLI_PATH not set, deploy endpoint disabled")
	}

	apiHandler := handlers.NewAPIHandler(generator, pages, deployer, cfg.ShareBaseURL, log)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Info("running in gin debug mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting API server", "address", cfg.ServerAddress, "provider", llm.ProviderName(cfg.AIProvider))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("API server listen error", "error", err)
			os.Exit(1)
		}
		log.Info("API server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down server", "signal", sig.String())

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	// In-flight generations see their request contexts cancelled.
	cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("API server forced shutdown", "error", err)
	} else {
		log.Info("API server gracefully stopped")
	}
	log.Info("application exiting")
}
