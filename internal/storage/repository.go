// Package storage persists overview snapshots and in-progress invoice
// drafts in a local sqlite database, so the app has data to show before
// the first fetch resolves after a cold start.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"invoicehero/internal/core"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("storage: not found")

type SQLiteRepository struct {
	db *sql.DB
}

// DraftInfo summarizes a saved draft for listing.
type DraftInfo struct {
	Name      string
	UpdatedAt time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot upserts the payload for one (slice, query) pair, stamping
// it with the current time.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, slice, fingerprint string, payload []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (slice, fingerprint, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slice, fingerprint)
		DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		slice, fingerprint, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot %s/%s: %w", slice, fingerprint, err)
	}
	return nil
}

// Snapshot returns the stored payload and its fetch time, or ErrNotFound.
func (r *SQLiteRepository) Snapshot(ctx context.Context, slice, fingerprint string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM snapshots
		WHERE slice = ? AND fingerprint = ?`,
		slice, fingerprint).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot %s/%s: %w", slice, fingerprint, err)
	}
	return payload, fetchedAt, nil
}

// PruneSnapshots deletes snapshots fetched before the cutoff and returns
// how many went.
func (r *SQLiteRepository) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE fetched_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return n, nil
}

// SaveDraft persists an in-progress invoice draft under a name.
func (r *SQLiteRepository) SaveDraft(ctx context.Context, name string, draft *core.InvoiceDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", name, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO drafts (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save draft %s: %w", name, err)
	}
	return nil
}

// Draft restores a saved draft, or ErrNotFound.
func (r *SQLiteRepository) Draft(ctx context.Context, name string) (*core.InvoiceDraft, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", name, err)
	}
	var draft core.InvoiceDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", name, err)
	}
	return &draft, nil
}

// Drafts lists saved drafts, most recently updated first.
func (r *SQLiteRepository) Drafts(ctx context.Context) ([]DraftInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var infos []DraftInfo
	for rows.Next() {
		var info DraftInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return infos, nil
}

// DeleteDraft removes a saved draft. Deleting a missing draft is not an
// error.
func (r *SQLiteRepository) DeleteDraft(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete draft %s: %w", name, err)
	}
	return nil
}
