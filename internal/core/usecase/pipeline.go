package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/ports"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/workpool"
)

// RunPipelineUseCase executes one queued job: extract, preprocess,
// classify, persist. Persistence is best effort throughout: a failing
// entry store never aborts a run that can still produce a result, and a
// failing classification is still recorded as a Failed entry when one
// was created.
type RunPipelineUseCase struct {
	entries      ports.EntryRepository
	users        ports.UserRepository
	storage      ports.ObjectStorage
	extractor    ports.TextExtractor
	preprocessor ports.TextPreprocessor
	classifier   ports.ReplyClassifier
	nlpPool      *workpool.Pool
	llmPool      *workpool.Pool
	logger       *slog.Logger
}

func NewRunPipelineUseCase(
	entries ports.EntryRepository,
	users ports.UserRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	preprocessor ports.TextPreprocessor,
	classifier ports.ReplyClassifier,
	nlpPool *workpool.Pool,
	llmPool *workpool.Pool,
	logger *slog.Logger,
) *RunPipelineUseCase {
	return &RunPipelineUseCase{
		entries:      entries,
		users:        users,
		storage:      storage,
		extractor:    extractor,
		preprocessor: preprocessor,
		classifier:   classifier,
		nlpPool:      nlpPool,
		llmPool:      llmPool,
		logger:       logger,
	}
}

func (uc *RunPipelineUseCase) Run(ctx context.Context, job domain.PipelineJob) (*domain.PipelineResult, error) {
	if job.StorageKey == "" && job.Text == "" {
		return nil, domain.WrapError(domain.ErrInputMissing, "run pipeline", errors.New("job carries neither text nor attachment"))
	}
	defer uc.cleanupAttachment(job)

	text, err := uc.resolveText(ctx, job)
	if err != nil {
		return nil, err
	}

	entry := uc.createEntry(ctx, job, text)

	stats, err := uc.preprocess(ctx, text, job.TopN)
	if err != nil {
		uc.markFailed(ctx, entry)
		return nil, err
	}

	classification, err := uc.classify(ctx, stats.CleanedText, uc.resolveUsername(ctx, job))
	if err != nil {
		uc.markFailed(ctx, entry)
		return nil, err
	}

	category := domain.ParseCategory(classification.Category)
	entry = uc.completeEntry(ctx, entry, category, classification.GeneratedResponse)

	result := &domain.PipelineResult{
		OriginalText:      text,
		Category:          category,
		GeneratedResponse: classification.GeneratedResponse,
		Status:            domain.StatusCompleted,
		FileName:          job.FileName,
		CreatedAt:         time.Now().UTC(),
		Stats:             stats,
	}
	if entry != nil {
		result.EntryID = entry.ID
		result.OwnerID = entry.OwnerID
		result.CreatedAt = entry.CreatedAt
	}

	uc.logger.Info("pipeline run completed",
		"job_id", job.ID, "category", string(category), "persisted", entry != nil)
	return result, nil
}

func (uc *RunPipelineUseCase) resolveText(ctx context.Context, job domain.PipelineJob) (string, error) {
	if job.StorageKey == "" {
		return job.Text, nil
	}
	text, err := uc.extractor.Extract(ctx, job.StorageKey)
	if err != nil {
		return "", fmt.Errorf("extract attachment text: %w", err)
	}
	return text, nil
}

// createEntry opens the persistence record in Processing state. Anonymous
// jobs are never persisted. The entry id is the job id, so a redelivered
// job hits a key conflict here; the run then adopts the existing entry so
// its final transition still lands. Only when no entry can be created or
// found does the run downgrade to in-memory only, logged, not returned.
func (uc *RunPipelineUseCase) createEntry(ctx context.Context, job domain.PipelineJob, text string) *domain.Entry {
	if job.OwnerID == "" {
		return nil
	}
	now := time.Now().UTC()
	entry := &domain.Entry{
		ID:              job.ID,
		OwnerID:         job.OwnerID,
		OriginalText:    text,
		Category:        domain.CategoryUnclassified,
		Status:          domain.StatusProcessing,
		FileName:        job.FileName,
		FileContentType: job.FileContentType,
		FileSize:        job.FileSize,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		existing, getErr := uc.entries.GetByID(ctx, job.ID)
		if getErr == nil && existing != nil && existing.OwnerID == job.OwnerID {
			uc.logger.Info("entry already exists, resuming run against it",
				"job_id", job.ID, "status", string(existing.Status))
			return existing
		}
		uc.logger.Warn("create entry failed, continuing without persistence",
			"job_id", job.ID, "error", err)
		return nil
	}
	return entry
}

func (uc *RunPipelineUseCase) preprocess(ctx context.Context, text string, topN int) (domain.TextStats, error) {
	var stats domain.TextStats
	err := uc.nlpPool.Run(ctx, func() error {
		var perr error
		stats, perr = uc.preprocessor.Preprocess(text, topN)
		return perr
	})
	if err != nil {
		return domain.TextStats{}, fmt.Errorf("preprocess text: %w", err)
	}
	return stats, nil
}

func (uc *RunPipelineUseCase) classify(ctx context.Context, cleanedText, username string) (domain.ClassificationResult, error) {
	var result domain.ClassificationResult
	err := uc.llmPool.Run(ctx, func() error {
		var cerr error
		result, cerr = uc.classifier.Classify(ctx, cleanedText, username)
		return cerr
	})
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classify text: %w", err)
	}
	return result, nil
}

// resolveUsername prefers the name carried by the job and falls back to a
// user lookup. Lookup failures degrade to an empty name.
func (uc *RunPipelineUseCase) resolveUsername(ctx context.Context, job domain.PipelineJob) string {
	if job.Username != "" {
		return job.Username
	}
	if job.OwnerID == "" {
		return ""
	}
	user, err := uc.users.GetByID(ctx, job.OwnerID)
	if err != nil {
		uc.logger.Warn("resolve username failed", "owner_id", job.OwnerID, "error", err)
		return ""
	}
	return user.Username
}

// completeEntry moves the entry to Completed. Category is only written
// when the model committed to one: Unclassified keeps whatever the entry
// already holds. Update failures are logged and the pre-update entry is
// kept for the result.
func (uc *RunPipelineUseCase) completeEntry(ctx context.Context, entry *domain.Entry, category domain.Category, response string) *domain.Entry {
	if entry == nil {
		return nil
	}
	status := domain.StatusCompleted
	update := domain.EntryUpdate{
		GeneratedResponse: &response,
		Status:            &status,
	}
	if category != domain.CategoryUnclassified {
		update.Category = &category
	}
	updated, err := uc.entries.UpdateByID(ctx, entry.ID, update)
	if err != nil || updated == nil {
		uc.logger.Warn("complete entry failed", "entry_id", entry.ID, "error", err)
		return entry
	}
	return updated
}

func (uc *RunPipelineUseCase) markFailed(ctx context.Context, entry *domain.Entry) {
	if entry == nil {
		return
	}
	status := domain.StatusFailed
	if _, err := uc.entries.UpdateByID(ctx, entry.ID, domain.EntryUpdate{Status: &status}); err != nil {
		uc.logger.Warn("mark entry failed errored", "entry_id", entry.ID, "error", err)
	}
}

// cleanupAttachment removes the staged file after any run, successful or
// not. It uses a fresh context so a cancelled job still releases storage.
func (uc *RunPipelineUseCase) cleanupAttachment(job domain.PipelineJob) {
	if job.StorageKey == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := uc.storage.Remove(ctx, job.StorageKey); err != nil {
		uc.logger.Warn("remove staged attachment failed",
			"storage_key", job.StorageKey, "error", err)
	}
}
