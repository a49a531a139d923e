package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/howardmhl/TabletopAndBottoms/internal/coordinator"
	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/web"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	// Configuration from environment
	port := getEnv("PORT", "8080")
	sheetID := getEnv("SHEET_ID", "")
	if sheetID == "" {
		log.Fatal("SHEET_ID is required")
	}

	cfg := coordinator.Config{
		LogTab:      getEnv("SHEET_LOG_NAME", "Log"),
		PlayersTab:  getEnv("SHEET_PLAYERS_NAME", "Players"),
		GamesTab:    getEnv("SHEET_GAMES_NAME", "Games"),
		CampaignTab: getEnv("SHEET_CAMPAIGN_NAME", ""),
	}

	// 0 disables the periodic reload, leaving only startup and manual refresh.
	refreshInterval := 5 * time.Minute
	if raw := getEnv("REFRESH_INTERVAL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			log.Fatalf("invalid REFRESH_INTERVAL %q", raw)
		}
		refreshInterval = d
	}

	coord := coordinator.New(gviz.NewClient(sheetID), cfg, log)

	server := web.NewServer(coord, log)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SSE subscription must exist before the loop starts
	server.StartSSE(coord.Subscribe())

	go coord.Run(ctx)

	// Initial load, then periodic reloads
	coord.RequestRefresh()
	if refreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(refreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					coord.RequestRefresh()
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: server,
	}

	// Handle shutdown signals
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Info("shutting down")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown error")
		}
	}()

	log.WithField("port", port).Info("server running")
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("HTTP server error")
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
