// Package sqlite provides SQLite-based persistent storage for CheerLink.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/cheerlink/cheerlink/internal/domain"
)

// rootStateKey is the app_state row holding the serialized aggregate.
const rootStateKey = "root_v1"

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Whole-aggregate state, one JSON row per key. Mirrors the
		// load/save contract of the web prototype's local storage.
		`CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Gacha draw audit log
		`CREATE TABLE IF NOT EXISTS draws (
			id        TEXT PRIMARY KEY,
			item_id   TEXT NOT NULL,
			name      TEXT NOT NULL,
			rarity    TEXT NOT NULL,
			duplicate BOOLEAN DEFAULT 0,
			drawn_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_draws_at ON draws(drawn_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Root State ─────────────────────────────────────────────────────────────

// LoadRoot reads the persisted aggregate. Absent or unparseable stored state
// returns found=false with no error — the session falls back to defaults.
func (d *DB) LoadRoot() (*domain.RootState, bool, error) {
	var raw string
	err := d.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, rootStateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var st domain.RootState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Printf("[sqlite] stored state unreadable, starting fresh: %v", err)
		return nil, false, nil
	}
	return &st, true, nil
}

// SaveRoot writes the whole aggregate.
func (d *DB) SaveRoot(st *domain.RootState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = d.db.Exec(
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		rootStateKey, string(raw),
	)
	return err
}

// ─── Draw Log ───────────────────────────────────────────────────────────────

// InsertDraw appends a gacha draw to the audit log.
func (d *DB) InsertDraw(rec domain.DrawRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO draws (id, item_id, name, rarity, duplicate, drawn_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ItemID, rec.Name, string(rec.Rarity), rec.Duplicate, rec.DrawnAt.Unix(),
	)
	return err
}

// ListDraws returns the most recent draws, newest first.
func (d *DB) ListDraws(limit int) ([]domain.DrawRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, item_id, name, rarity, duplicate, drawn_at
		 FROM draws ORDER BY drawn_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.DrawRecord
	for rows.Next() {
		var rec domain.DrawRecord
		var rarity string
		var drawnAt int64
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Name, &rarity, &rec.Duplicate, &drawnAt); err != nil {
			return nil, err
		}
		rec.Rarity = domain.Rarity(rarity)
		rec.DrawnAt = time.Unix(drawnAt, 0)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DrawCount returns the total number of logged draws.
func (d *DB) DrawCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM draws`).Scan(&n)
	return n, err
}
