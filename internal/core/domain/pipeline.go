package domain

import "time"

// DefaultTopN is how many frequent tokens a job reports when the
// submitter does not ask for a specific count.
const DefaultTopN = 15

// PipelineJob is one queued unit of pipeline work. Exactly one of
// StorageKey or Text must be set. The pipeline tolerates duplicate
// deliveries of the same job; it does not deduplicate re-runs.
type PipelineJob struct {
	ID              string    `json:"id"`
	StorageKey      string    `json:"storage_key,omitempty"`
	Text            string    `json:"text,omitempty"`
	OwnerID         string    `json:"owner_id,omitempty"`
	Username        string    `json:"username,omitempty"`
	TopN            int       `json:"top_n,omitempty"`
	FileName        string    `json:"file_name,omitempty"`
	FileContentType string    `json:"file_content_type,omitempty"`
	FileSize        int64     `json:"file_size,omitempty"`
	EnqueuedAt      time.Time `json:"enqueued_at"`
}

// JobHandle is what a submitter gets back immediately; outcome is read
// later from the entry store.
type JobHandle struct {
	ID string `json:"job_id"`
}

type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TextStats is the lexical preprocessing output. CleanedText is what the
// classifier receives, not the original raw text.
type TextStats struct {
	CleanedText    string       `json:"cleaned_text"`
	Tokens         []string     `json:"tokens"`
	UniqueTokens   int          `json:"unique_tokens"`
	TotalTokens    int          `json:"total_tokens"`
	TopTokens      []TokenCount `json:"top_tokens"`
	OriginalLength int          `json:"original_len"`
}

// ClassificationResult is the parsed model output for one invocation.
// Category carries the raw label; the orchestrator normalizes it.
type ClassificationResult struct {
	Category          string   `json:"category"`
	Confidence        *float64 `json:"confidence"`
	GeneratedResponse string   `json:"generated_response"`
}

// PipelineResult is returned to the queue worker after a completed run.
// EntryID is empty when the run finished without persistence.
type PipelineResult struct {
	EntryID           string    `json:"id,omitempty"`
	OwnerID           string    `json:"owner_id,omitempty"`
	OriginalText      string    `json:"original_text"`
	Category          Category  `json:"category"`
	GeneratedResponse string    `json:"generated_response"`
	Status            Status    `json:"status"`
	FileName          string    `json:"file_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	Stats             TextStats `json:"nlp_stats"`
}
