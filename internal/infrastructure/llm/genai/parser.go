package genai

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

// Field names that mark leaked SDK response metadata. The raw text is
// truncated at the earliest occurrence before any parsing.
var artifactTokens = []string{
	"sdk_http_response",
	"candidates",
	"usage_metadata",
	"parsed",
	"create_time",
	"model_version",
	"prompt_feedback",
	"response_id",
	"candidates_token_count",
	"prompt_token_count",
	"total_token_count",
	"automatic_function_calling_history",
}

const (
	confidenceMarker = "CONFIDENCE:"
	responseMarker   = "RESPOSTA_SUGERIDA:"
)

var (
	categoryRe      = regexp.MustCompile(`(?i)(?:CATEGORIA\s*:\s*)?(PRODUTIVO|IMPRODUTIVO)`)
	multiNewlineRe  = regexp.MustCompile(`\n{3,}`)
	prefixRe        = regexp.MustCompile(`(?is)^\s*(?:PRODUTIVO|IMPRODUTIVO)\s*(?:CONFIDENCE\s*:\s*(?:[0-9.]+|null))?\s*[\s:\-]*`)
	responseMarkRe  = regexp.MustCompile(`(?i)RESPOSTA_SUGERIDA\s*:\s*`)
)

// ParseResponse turns raw model output into a ClassificationResult. The
// grammar is: category line, optional confidence line, free-text body.
// Anything malformed degrades to defaults; this function never fails.
func ParseResponse(raw string) domain.ClassificationResult {
	result := domain.ClassificationResult{Category: string(domain.CategoryUnclassified)}

	cleaned := stripArtifacts(raw)
	if strings.TrimSpace(cleaned) == "" {
		return result
	}

	lines := strings.Split(cleaned, "\n")

	if m := categoryRe.FindStringSubmatch(lines[0]); m != nil {
		switch strings.ToUpper(m[1]) {
		case "PRODUTIVO":
			result.Category = string(domain.CategoryProductive)
		case "IMPRODUTIVO":
			result.Category = string(domain.CategoryUnproductive)
		}
	}

	if len(lines) >= 2 {
		result.Confidence = parseConfidence(lines[1])
	}

	body := ""
	if len(lines) >= 3 {
		body = stripResponseMarker(strings.TrimSpace(strings.Join(lines[2:], "\n")))
	}
	if body == "" {
		// Fallback keeps the reply non-empty when the model ignored the
		// line structure: strip the category/confidence prefix pattern
		// from the cleaned text instead.
		body = strings.TrimSpace(responseMarkRe.ReplaceAllString(prefixRe.ReplaceAllString(cleaned, ""), ""))
	}
	result.GeneratedResponse = body

	return result
}

func parseConfidence(line string) *float64 {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(confidenceMarker) || !strings.EqualFold(trimmed[:len(confidenceMarker)], confidenceMarker) {
		return nil
	}
	value := strings.TrimSpace(trimmed[len(confidenceMarker):])
	if strings.EqualFold(value, "null") {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func stripResponseMarker(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) >= len(responseMarker) && strings.EqualFold(trimmed[:len(responseMarker)], responseMarker) {
		return strings.TrimSpace(trimmed[len(responseMarker):])
	}
	return trimmed
}

func stripArtifacts(raw string) string {
	out := raw
	cut := -1
	for _, token := range artifactTokens {
		if idx := strings.Index(out, token); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut >= 0 {
		out = out[:cut]
	}
	return multiNewlineRe.ReplaceAllString(out, "\n\n")
}
