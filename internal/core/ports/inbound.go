package ports

import (
	"context"
	"io"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

// Submitter is the inbound contract for queueing pipeline work.
type Submitter interface {
	SubmitText(ctx context.Context, ownerID, text string, topN int) (domain.JobHandle, error)
	SubmitFile(ctx context.Context, ownerID, filename, contentType string, size int64, body io.Reader, topN int) (domain.JobHandle, error)
}

// PipelineRunner executes one queued job to completion or failure.
type PipelineRunner interface {
	Run(ctx context.Context, job domain.PipelineJob) (*domain.PipelineResult, error)
}
