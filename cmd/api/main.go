package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/ViniciusLugli/AutoU-Email-Build/internal/adapters/http"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/bootstrap"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/config"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/observability/logging"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/observability/metrics"
)

const serviceName = "autou-api"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(
		app.SubmitUC,
		app.Entries,
		app.Users,
		app.Tokens,
		logger,
		metrics.NewHTTPServerMetrics(serviceName),
		serviceName,
	).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", "error", err)
	}
}
