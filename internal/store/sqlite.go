package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/lyricss1/WeatherBot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
// A path of ":memory:" keeps all state process-local, which is the default
// operating mode: profiles are not expected to survive a restart.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if !isMemory(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine. A single
	// connection also keeps an in-memory database from vanishing between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// GetProfile returns a user's profile by chatID, or ErrNotFound.
func (r *SQLiteRepo) GetProfile(ctx context.Context, chatID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, name, city, created_at
		FROM profiles
		WHERE chat_id = ?`,
		chatID,
	)

	var (
		id        int64
		name      string
		city      string
		createdAt int64
	)
	if err := row.Scan(&id, &name, &city, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &domain.Profile{
		ChatID:    id,
		Name:      name,
		City:      city,
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}, nil
}

// UpsertProfile inserts or updates a profile. Empty Name/City fields are
// treated as "not supplied" and leave the stored value untouched, so callers
// can update one field without re-reading the row first.
func (r *SQLiteRepo) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	created := p.CreatedAt.UTC().Unix()
	if p.CreatedAt.IsZero() {
		created = time.Now().UTC().Unix()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (chat_id, name, city, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE profiles.name END,
			city = CASE WHEN excluded.city != '' THEN excluded.city ELSE profiles.city END`,
		p.ChatID, p.Name, p.City, created,
	)
	return err
}

// DeleteProfile removes a user's profile entirely. Deleting an absent row is
// not an error; callers coordinate job cancellation themselves.
func (r *SQLiteRepo) DeleteProfile(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE chat_id = ?`, chatID)
	return err
}
