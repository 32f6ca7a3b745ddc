package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/ports"
)

// Extractor converts stored attachments into plain text. The storage key's
// extension selects the decoder: PDF page by page, XLSX row by row,
// anything else as UTF-8 text.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, storageKey string) (string, error) {
	reader, err := e.storage.Open(ctx, storageKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.WrapError(domain.ErrFileNotFound, "open attachment", err)
		}
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}

	switch strings.ToLower(filepath.Ext(storageKey)) {
	case ".pdf":
		return extractPDF(raw)
	case ".xlsx", ".xlsm":
		return extractXLSX(raw)
	default:
		return extractText(storageKey, raw)
	}
}

func extractText(storageKey string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrInvalidInput, "decode attachment", fmt.Errorf("%s is not utf-8 text", storageKey))
	}
	return string(raw), nil
}

// extractPDF joins page texts with newlines. A page with no extractable
// text contributes an empty string; an image-only page never fails the
// whole document.
func extractPDF(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractXLSX(raw []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse xlsx: %w", err)
	}
	defer file.Close()

	var out strings.Builder
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
