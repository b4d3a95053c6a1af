package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"testbuddy-checkout/internal/client"
	"testbuddy-checkout/internal/config"
	"testbuddy-checkout/internal/logger"
	"testbuddy-checkout/internal/repository"
	"testbuddy-checkout/internal/sdk"
	"testbuddy-checkout/internal/server"
	"testbuddy-checkout/internal/service"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := client.InitSqliteClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("init database", "error", err)
	}

	testBuddyClient := client.NewTestBuddyClient(&cfg.TestBuddy)
	loader := sdk.NewScriptLoader(cfg.SDK.Timeout, log)

	attemptRepo := repository.NewAttemptRepository(db)

	checkoutService := service.NewCheckoutService(
		cfg,
		testBuddyClient,
		loader,
		attemptRepo,
		service.NewMemorySessionStore(nil),
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, checkoutService, loader)

	log.Infow("Starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("HTTP server shutdown error", "error", err)
	}
}
