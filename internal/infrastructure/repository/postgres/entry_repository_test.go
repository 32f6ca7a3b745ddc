package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

func newEntryRepoWithMock(t *testing.T) (*EntryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &EntryRepository{db: db}, mock, func() { _ = db.Close() }
}

func entryRows(entry domain.Entry) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "original_text", "category", "generated_response", "status",
		"file_name", "file_content_type", "file_size", "created_at", "updated_at",
	}).AddRow(
		entry.ID, nullString(entry.OwnerID), entry.OriginalText,
		string(entry.Category), entry.GeneratedResponse, string(entry.Status),
		nullString(entry.FileName), nullString(entry.FileContentType), nullInt64(entry.FileSize),
		entry.CreatedAt, entry.UpdatedAt,
	)
}

func TestEntryGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, owner_id, original_text").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEntryGetByIDScansNullableColumns(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	stored := domain.Entry{
		ID:           "e1",
		OriginalText: "texto",
		Category:     domain.CategoryUnclassified,
		Status:       domain.StatusProcessing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	mock.ExpectQuery("SELECT id, owner_id, original_text").
		WithArgs("e1").
		WillReturnRows(entryRows(stored))

	entry, err := repo.GetByID(context.Background(), "e1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if entry.OwnerID != "" || entry.FileName != "" || entry.FileSize != 0 {
		t.Fatalf("expected zero values for null columns, got %+v", entry)
	}
	if entry.Status != domain.StatusProcessing {
		t.Fatalf("expected status %q, got %q", domain.StatusProcessing, entry.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEntryUpdateByIDReturnsNilNilOnMiss(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	status := domain.StatusFailed
	mock.ExpectQuery("UPDATE entries").
		WithArgs("missing", string(domain.StatusFailed), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	entry, err := repo.UpdateByID(context.Background(), "missing", domain.EntryUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry on miss, got %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEntryUpdateByIDNormalizesCategory(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	category := domain.Category("produtivo")
	response := "Obrigado pelo contato."
	status := domain.StatusCompleted

	updated := domain.Entry{
		ID:                "e1",
		OwnerID:           "u1",
		OriginalText:      "texto",
		Category:          domain.CategoryProductive,
		GeneratedResponse: response,
		Status:            domain.StatusCompleted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	mock.ExpectQuery("UPDATE entries").
		WithArgs("e1", string(domain.CategoryProductive), response, string(domain.StatusCompleted), sqlmock.AnyArg()).
		WillReturnRows(entryRows(updated))

	entry, err := repo.UpdateByID(context.Background(), "e1", domain.EntryUpdate{
		Category:          &category,
		GeneratedResponse: &response,
		Status:            &status,
	})
	if err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}
	if entry.Category != domain.CategoryProductive {
		t.Fatalf("expected %q, got %q", domain.CategoryProductive, entry.Category)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEntryDeleteByIDReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM entries").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEntryListByOwnerReturnsEmptySliceWithoutRows(t *testing.T) {
	repo, mock, done := newEntryRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, owner_id, original_text").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "original_text", "category", "generated_response", "status",
			"file_name", "file_content_type", "file_size", "created_at", "updated_at",
		}))

	entries, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty slice, got %v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
