package ports

import (
	"context"
	"io"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

// EntryRepository persists submission lifecycle state.
// UpdateByID applies a partial update and returns (nil, nil) when the id is
// unknown: a lookup miss is not an error.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Entry, error)
	UpdateByID(ctx context.Context, id string, update domain.EntryUpdate) (*domain.Entry, error)
	DeleteByID(ctx context.Context, id string) error
}

// UserRepository persists user accounts. Deleting a user cascades to the
// user's entries.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}

// ObjectStorage stores submitted attachments until the pipeline consumes
// them. Remove tolerates an already-missing key.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// JobQueue hands pipeline jobs to worker processes with at-least-once
// delivery.
type JobQueue interface {
	PublishPipelineJob(ctx context.Context, job domain.PipelineJob) error
	SubscribePipelineJobs(ctx context.Context, handler func(context.Context, domain.PipelineJob) error) error
}

// TextExtractor converts a stored attachment into plain text. Read-only:
// deleting the attachment is the orchestrator's responsibility.
type TextExtractor interface {
	Extract(ctx context.Context, storageKey string) (string, error)
}

// TextPreprocessor normalizes and tokenizes raw text.
type TextPreprocessor interface {
	Preprocess(text string, topN int) (domain.TextStats, error)
}

// ReplyClassifier invokes the remote model on cleaned text and parses its
// free-text response. It never retries; retry policy belongs to the caller.
type ReplyClassifier interface {
	Classify(ctx context.Context, cleanedText, username string) (domain.ClassificationResult, error)
}
