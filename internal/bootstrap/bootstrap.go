package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/config"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/ports"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/usecase"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/auth"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/extractor/attachment"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/llm/genai"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/nlp"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/queue/nats"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/repository/postgres"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/resilience"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/storage/localfs"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/workpool"
)

// App wires the shared dependency graph for both the api and worker
// processes. Each process uses the slice it needs and ignores the rest.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue    *nats.Queue
	Entries  ports.EntryRepository
	Users    ports.UserRepository
	Tokens   *auth.TokenIssuer
	SubmitUC ports.Submitter
	RunUC    ports.PipelineRunner

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	entries := postgres.NewEntryRepository(db)
	if err := entries.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	users := postgres.NewUserRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queuePolicy := resilience.DefaultPolicy()
	queuePolicy.BreakerEnabled = cfg.BreakerOn
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(queuePolicy, logger),
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init job queue: %w", err)
	}

	classifierPolicy := resilience.NoRetryPolicy()
	classifierPolicy.BreakerEnabled = cfg.BreakerOn
	classifier := genai.New(genai.Config{
		BaseURL:           cfg.GenAIBaseURL,
		APIKey:            cfg.GenAIAPIKey,
		Model:             cfg.GenAIModel,
		MaxOutputTokens:   cfg.GenAIMaxOutputTokens,
		Temperature:       cfg.GenAITemperature,
		RequestsPerMinute: cfg.GenAIRequestsPerMin,
	}, resilience.NewExecutor(classifierPolicy, logger))

	extractor := attachment.NewExtractor(storage)
	preprocessor := nlp.NewPreprocessor()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	submitUC := usecase.NewSubmitUseCase(storage, queue, logger, cfg.DefaultTopN)
	runUC := usecase.NewRunPipelineUseCase(
		entries,
		users,
		storage,
		extractor,
		preprocessor,
		classifier,
		workpool.New("nlp", cfg.NLPWorkers),
		workpool.New("llm", cfg.LLMWorkers),
		logger,
	)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:    queue,
		Entries:  entries,
		Users:    users,
		Tokens:   tokens,
		SubmitUC: submitUC,
		RunUC:    runUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
