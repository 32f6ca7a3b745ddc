package nlp

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

// DefaultTopN mirrors the domain default so callers can use this package
// standalone.
const DefaultTopN = domain.DefaultTopN

// Portuguese short function words dropped before counting. Tokens of
// length <= 2 are dropped regardless, so only the longer ones here matter.
var stopwords = map[string]struct{}{
	"e": {}, "o": {}, "a": {}, "de": {}, "do": {}, "da": {},
	"em": {}, "um": {}, "uma": {}, "para": {}, "com": {}, "não": {},
	"na": {}, "no": {}, "que": {}, "se": {}, "por": {}, "mais": {},
	"as": {}, "os": {}, "é": {}, "são": {}, "foi": {}, "foram": {},
}

// Preprocessor is a pure, deterministic tokenizer. It is CPU-bound and is
// expected to run through a bounded pool off the request path.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

func (p *Preprocessor) Preprocess(text string, topN int) (domain.TextStats, error) {
	if !utf8.ValidString(text) {
		return domain.TextStats{}, domain.WrapError(domain.ErrInvalidInput, "preprocess text", errors.New("input is not valid utf-8 text"))
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, text)

	tokens := strings.Fields(strings.ToLower(stripped))

	filtered := make([]string, 0, len(tokens))
	counts := make(map[string]int)
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, skip := stopwords[token]; skip {
			continue
		}
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		filtered = append(filtered, token)
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	top := make([]domain.TokenCount, 0, len(order))
	for _, token := range order {
		top = append(top, domain.TokenCount{Token: token, Count: counts[token]})
	}
	// Stable sort keeps first-encountered order on equal counts.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > topN {
		top = top[:topN]
	}

	return domain.TextStats{
		CleanedText:    strings.Join(filtered, " "),
		Tokens:         filtered,
		UniqueTokens:   len(counts),
		TotalTokens:    len(filtered),
		TopTokens:      top,
		OriginalLength: utf8.RuneCountInString(text),
	}, nil
}
