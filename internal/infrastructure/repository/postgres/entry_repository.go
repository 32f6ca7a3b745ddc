package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *EntryRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	owner_id TEXT REFERENCES users(id) ON DELETE CASCADE,
	original_text TEXT NOT NULL,
	category TEXT NOT NULL,
	generated_response TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	file_name TEXT,
	file_content_type TEXT,
	file_size BIGINT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_owner_id ON entries(owner_id);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

const entryColumns = "id, owner_id, original_text, category, generated_response, status, file_name, file_content_type, file_size, created_at, updated_at"

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO entries (`+entryColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		entry.ID,
		nullString(entry.OwnerID),
		entry.OriginalText,
		string(entry.Category),
		entry.GeneratedResponse,
		string(entry.Status),
		nullString(entry.FileName),
		nullString(entry.FileContentType),
		nullInt64(entry.FileSize),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE id = $1
`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrEntryNotFound, "get entry by id", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	return entry, nil
}

func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE owner_id = $1
ORDER BY created_at DESC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// UpdateByID applies the non-nil fields of update. An unknown id is a
// lookup miss, not an error: both return values are nil. Enum fields are
// normalized to their canonical strings before storage.
func (r *EntryRepository) UpdateByID(ctx context.Context, id string, update domain.EntryUpdate) (*domain.Entry, error) {
	set := make([]string, 0, 4)
	args := []any{id}
	place := 2

	if update.Category != nil {
		set = append(set, fmt.Sprintf("category = $%d", place))
		args = append(args, string(domain.ParseCategory(string(*update.Category))))
		place++
	}
	if update.GeneratedResponse != nil {
		set = append(set, fmt.Sprintf("generated_response = $%d", place))
		args = append(args, *update.GeneratedResponse)
		place++
	}
	if update.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", place))
		args = append(args, string(*update.Status))
		place++
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", place))
	args = append(args, time.Now().UTC())

	query := `
UPDATE entries
SET ` + strings.Join(set, ", ") + `
WHERE id = $1
RETURNING ` + entryColumns

	row := r.db.QueryRowContext(ctx, query, args...)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

func (r *EntryRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrEntryNotFound, "delete entry", fmt.Errorf("id=%s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var entry domain.Entry
	var ownerID, fileName, fileContentType sql.NullString
	var fileSize sql.NullInt64
	var category, status string

	err := row.Scan(
		&entry.ID,
		&ownerID,
		&entry.OriginalText,
		&category,
		&entry.GeneratedResponse,
		&status,
		&fileName,
		&fileContentType,
		&fileSize,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.OwnerID = ownerID.String
	entry.FileName = fileName.String
	entry.FileContentType = fileContentType.String
	entry.FileSize = fileSize.Int64
	entry.Category = domain.Category(category)
	entry.Status = domain.Status(status)
	return &entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
