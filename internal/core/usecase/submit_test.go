package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

type queueFake struct {
	published []domain.PipelineJob
	err       error
}

func (f *queueFake) PublishPipelineJob(_ context.Context, job domain.PipelineJob) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, job)
	return nil
}

func (f *queueFake) SubscribePipelineJobs(context.Context, func(context.Context, domain.PipelineJob) error) error {
	return nil
}

func newSubmitUseCase(storage *storageFake, queue *queueFake) *SubmitUseCase {
	return NewSubmitUseCase(storage, queue, slog.New(slog.DiscardHandler), 0)
}

func TestSubmitTextQueuesJob(t *testing.T) {
	queue := &queueFake{}
	uc := newSubmitUseCase(&storageFake{}, queue)

	handle, err := uc.SubmitText(context.Background(), "u1", "preciso do status do chamado", 0)
	if err != nil {
		t.Fatalf("SubmitText() error = %v", err)
	}
	if handle.ID == "" {
		t.Fatalf("expected a job id")
	}
	if len(queue.published) != 1 {
		t.Fatalf("expected one published job, got %d", len(queue.published))
	}
	job := queue.published[0]
	if job.Text == "" || job.StorageKey != "" {
		t.Fatalf("text job must carry text only, got %+v", job)
	}
	if job.OwnerID != "u1" {
		t.Fatalf("expected owner u1, got %q", job.OwnerID)
	}
	if job.TopN != domain.DefaultTopN {
		t.Fatalf("expected default top-n %d, got %d", domain.DefaultTopN, job.TopN)
	}
}

func TestSubmitTextRejectsBlankInput(t *testing.T) {
	uc := newSubmitUseCase(&storageFake{}, &queueFake{})

	_, err := uc.SubmitText(context.Background(), "u1", "   \n\t", 0)
	if !domain.IsKind(err, domain.ErrInputMissing) {
		t.Fatalf("expected ErrInputMissing, got %v", err)
	}
}

func TestSubmitFileStagesAttachmentAndQueuesJob(t *testing.T) {
	queue := &queueFake{}
	uc := newSubmitUseCase(&storageFake{}, queue)

	handle, err := uc.SubmitFile(context.Background(), "u1", "fatura março.pdf", "application/pdf", 42, strings.NewReader("%PDF"), 5)
	if err != nil {
		t.Fatalf("SubmitFile() error = %v", err)
	}
	if len(queue.published) != 1 {
		t.Fatalf("expected one published job, got %d", len(queue.published))
	}
	job := queue.published[0]
	if job.ID != handle.ID {
		t.Fatalf("handle id %q does not match job id %q", handle.ID, job.ID)
	}
	if !strings.HasPrefix(job.StorageKey, job.ID+"_") {
		t.Fatalf("storage key %q must be prefixed by the job id", job.StorageKey)
	}
	if strings.ContainsAny(job.StorageKey, " ç") {
		t.Fatalf("storage key %q must be sanitized", job.StorageKey)
	}
	if job.FileName != "fatura março.pdf" || job.FileSize != 42 {
		t.Fatalf("job must keep the original metadata, got %+v", job)
	}
	if job.TopN != 5 {
		t.Fatalf("expected requested top-n 5, got %d", job.TopN)
	}
}

func TestSubmitFilePublishFailureRemovesStagedAttachment(t *testing.T) {
	storage := &storageFake{}
	uc := newSubmitUseCase(storage, &queueFake{err: errors.New("nats down")})

	_, err := uc.SubmitFile(context.Background(), "u1", "mail.txt", "text/plain", 4, strings.NewReader("oi"), 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(storage.removed) != 1 {
		t.Fatalf("expected staged attachment removal, got %v", storage.removed)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fatura março.pdf", "fatura_mar_o.pdf"},
		{"../../etc/passwd", "passwd"},
		{"", "attachment.bin"},
		{"relatório final-2.xlsx", "relat_rio_final-2.xlsx"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
