package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/bootstrap"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/config"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/observability/logging"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/observability/metrics"
)

const serviceName = "autou-worker"

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

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribePipelineJobs(ctx, func(handlerCtx context.Context, job domain.PipelineJob) error {
		workerMetrics.StartJob()
		workerMetrics.ObserveQueueLag(serviceName, time.Since(job.EnqueuedAt))
		start := time.Now()

		runCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		result, runErr := app.RunUC.Run(runCtx, job)
		workerMetrics.FinishJob(serviceName, time.Since(start), runErr)
		if runErr != nil {
			return runErr
		}
		workerMetrics.RecordClassification(serviceName, string(result.Category))
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
