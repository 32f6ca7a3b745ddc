package domain

import (
	"strings"
	"time"
)

// Category is the classification outcome for one submission. The canonical
// string values are what persistence and API responses carry.
type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
	CategoryUnclassified Category = "Sem classificação"
)

// ParseCategory resolves a raw model label into a canonical Category.
// Exact (case-insensitive) matches win; otherwise stem heuristics apply:
// a "prod" prefix maps to Productive, an "improd"/"im" prefix to
// Unproductive, anything else to Unclassified. The stems are tied to the
// Portuguese taxonomy the classifier is prompted with.
func ParseCategory(raw string) Category {
	low := strings.ToLower(strings.TrimSpace(raw))
	switch low {
	case "produtivo":
		return CategoryProductive
	case "improdutivo":
		return CategoryUnproductive
	case "sem classificação", "sem classificacao":
		return CategoryUnclassified
	}
	switch {
	case strings.HasPrefix(low, "prod"):
		return CategoryProductive
	case strings.HasPrefix(low, "improd"), strings.HasPrefix(low, "im"):
		return CategoryUnproductive
	default:
		return CategoryUnclassified
	}
}

// Status is the lifecycle state of an Entry. Transitions are monotonic:
// Processing moves to exactly one of Completed or Failed and never back.
type Status string

const (
	StatusProcessing Status = "Processando"
	StatusCompleted  Status = "Concluído"
	StatusFailed     Status = "Falhou"
)

// Entry is the persistent record of one text submission and its outcome.
type Entry struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id,omitempty"`
	OriginalText      string    `json:"original_text"`
	Category          Category  `json:"category"`
	GeneratedResponse string    `json:"generated_response"`
	Status            Status    `json:"status"`
	FileName          string    `json:"file_name,omitempty"`
	FileContentType   string    `json:"file_content_type,omitempty"`
	FileSize          int64     `json:"file_size,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EntryUpdate is a partial update applied to an existing Entry. Nil fields
// are left untouched.
type EntryUpdate struct {
	Category          *Category
	GeneratedResponse *string
	Status            *Status
}
