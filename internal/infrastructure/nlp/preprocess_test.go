package nlp

import (
	"strings"
	"testing"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

func TestPreprocessStripsPunctuationAndStopwords(t *testing.T) {
	pre := NewPreprocessor()

	stats, err := pre.Preprocess("Segue o relatório em anexo, favor revisar até amanhã!", 15)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	want := "segue relatório anexo favor revisar até amanhã"
	if stats.CleanedText != want {
		t.Fatalf("cleaned text = %q, want %q", stats.CleanedText, want)
	}
	if stats.TotalTokens != 7 || stats.UniqueTokens != 7 {
		t.Fatalf("unexpected counts: total=%d unique=%d", stats.TotalTokens, stats.UniqueTokens)
	}
}

func TestPreprocessCountInvariants(t *testing.T) {
	pre := NewPreprocessor()

	stats, err := pre.Preprocess("projeto projeto projeto prazo prazo entrega reunião cliente cliente cliente cliente", 3)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if stats.UniqueTokens > stats.TotalTokens {
		t.Fatalf("unique %d > total %d", stats.UniqueTokens, stats.TotalTokens)
	}
	if len(stats.TopTokens) != 3 {
		t.Fatalf("expected top_n cap of 3, got %d", len(stats.TopTokens))
	}
	if stats.TopTokens[0].Token != "cliente" || stats.TopTokens[0].Count != 4 {
		t.Fatalf("expected cliente(4) first, got %+v", stats.TopTokens[0])
	}
	if stats.TopTokens[1].Token != "projeto" || stats.TopTokens[2].Token != "prazo" {
		t.Fatalf("unexpected ordering: %+v", stats.TopTokens)
	}
}

func TestPreprocessBreaksTiesByFirstEncounter(t *testing.T) {
	pre := NewPreprocessor()

	stats, err := pre.Preprocess("zebra abacaxi zebra abacaxi manga manga", 15)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	got := make([]string, 0, len(stats.TopTokens))
	for _, tc := range stats.TopTokens {
		got = append(got, tc.Token)
	}
	if strings.Join(got, " ") != "zebra abacaxi manga" {
		t.Fatalf("expected stable first-encounter tie order, got %v", got)
	}
}

func TestPreprocessIdempotentOnCleanedText(t *testing.T) {
	pre := NewPreprocessor()

	first, err := pre.Preprocess("Prezados, o cronograma atualizado do projeto está disponível; confirmem as novas datas.", 15)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	second, err := pre.Preprocess(first.CleanedText, 15)
	if err != nil {
		t.Fatalf("Preprocess(cleaned) error = %v", err)
	}
	if second.CleanedText != first.CleanedText {
		t.Fatalf("cleaned text not stable: %q vs %q", second.CleanedText, first.CleanedText)
	}
	if second.TotalTokens != first.TotalTokens || second.UniqueTokens != first.UniqueTokens {
		t.Fatalf("token counts not stable: %+v vs %+v", second, first)
	}
}

func TestPreprocessRejectsNonTextInput(t *testing.T) {
	pre := NewPreprocessor()

	_, err := pre.Preprocess(string([]byte{0xff, 0xfe, 0xfd}), 15)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPreprocessEmptyInput(t *testing.T) {
	pre := NewPreprocessor()

	stats, err := pre.Preprocess("", 15)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if stats.TotalTokens != 0 || stats.UniqueTokens != 0 || len(stats.TopTokens) != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
