package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/resilience"
)

type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	MaxOutputTokens   int
	Temperature       float64
	RequestsPerMinute int
}

// Client calls a hosted generative model over HTTP and parses its
// free-text reply into a ClassificationResult. The client performs exactly
// one generation attempt per Classify call; job retry policy lives with
// the orchestrator and the queue.
type Client struct {
	baseURL         string
	apiKey          string
	model           string
	maxOutputTokens int
	temperature     float64

	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
		temperature:     cfg.Temperature,
		httpClient:      &http.Client{Timeout: 120 * time.Second},
		limiter:         limiter,
		executor:        executor,
	}
}

func (c *Client) Classify(ctx context.Context, cleanedText, username string) (domain.ClassificationResult, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return domain.ClassificationResult{}, domain.WrapError(
			domain.ErrClassificationUnavailable,
			"classify reply",
			errors.New("generation api key is not configured"),
		)
	}

	prompt := buildPrompt(cleanedText, username)

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.ClassificationResult{}, err
	}

	var raw string
	call := func(callCtx context.Context) error {
		var err error
		raw, err = c.generateStream(callCtx, prompt)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "genai.generate", call, classifyGenAIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.ClassificationResult{}, wrapUnavailable("classify reply", err)
	}

	return ParseResponse(raw), nil
}
