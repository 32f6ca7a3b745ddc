package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/ports"
)

// SubmitUseCase accepts raw submissions, stages attachments and queues
// pipeline jobs. The caller gets a job handle back immediately; the
// outcome is read later from the entry store.
type SubmitUseCase struct {
	storage     ports.ObjectStorage
	queue       ports.JobQueue
	logger      *slog.Logger
	defaultTopN int
}

func NewSubmitUseCase(
	storage ports.ObjectStorage,
	queue ports.JobQueue,
	logger *slog.Logger,
	defaultTopN int,
) *SubmitUseCase {
	if defaultTopN <= 0 {
		defaultTopN = domain.DefaultTopN
	}
	return &SubmitUseCase{
		storage:     storage,
		queue:       queue,
		logger:      logger,
		defaultTopN: defaultTopN,
	}
}

func (uc *SubmitUseCase) SubmitText(ctx context.Context, ownerID, text string, topN int) (domain.JobHandle, error) {
	if strings.TrimSpace(text) == "" {
		return domain.JobHandle{}, domain.WrapError(domain.ErrInputMissing, "submit text", errors.New("empty text"))
	}

	job := domain.PipelineJob{
		ID:         uuid.NewString(),
		Text:       text,
		OwnerID:    ownerID,
		TopN:       uc.topN(topN),
		EnqueuedAt: time.Now().UTC(),
	}
	if err := uc.publish(ctx, job); err != nil {
		return domain.JobHandle{}, err
	}
	return domain.JobHandle{ID: job.ID}, nil
}

func (uc *SubmitUseCase) SubmitFile(
	ctx context.Context,
	ownerID, filename, contentType string,
	size int64,
	body io.Reader,
	topN int,
) (domain.JobHandle, error) {
	if body == nil {
		return domain.JobHandle{}, domain.WrapError(domain.ErrInputMissing, "submit file", errors.New("nil body"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return domain.JobHandle{}, fmt.Errorf("save attachment: %w", err)
	}

	job := domain.PipelineJob{
		ID:              id,
		StorageKey:      storageKey,
		OwnerID:         ownerID,
		TopN:            uc.topN(topN),
		FileName:        filename,
		FileContentType: contentType,
		FileSize:        size,
		EnqueuedAt:      time.Now().UTC(),
	}
	if err := uc.publish(ctx, job); err != nil {
		// The attachment is orphaned if publish fails; reclaim it now
		// instead of leaving it for no consumer.
		if rmErr := uc.storage.Remove(ctx, storageKey); rmErr != nil {
			uc.logger.Warn("remove staged attachment after publish failure",
				"storage_key", storageKey, "error", rmErr)
		}
		return domain.JobHandle{}, err
	}
	return domain.JobHandle{ID: id}, nil
}

func (uc *SubmitUseCase) publish(ctx context.Context, job domain.PipelineJob) error {
	if err := uc.queue.PublishPipelineJob(ctx, job); err != nil {
		return fmt.Errorf("publish pipeline job: %w", err)
	}
	uc.logger.Info("pipeline job queued",
		"job_id", job.ID, "has_attachment", job.StorageKey != "", "owner_id", job.OwnerID)
	return nil
}

func (uc *SubmitUseCase) topN(requested int) int {
	if requested <= 0 {
		return uc.defaultTopN
	}
	return requested
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "attachment.bin"
	}
	return base
}
