// Package persistence provides SQLite-backed snapshot storage for the world
// state, plus an append-only day log.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/avelinek/campusdays/internal/engine"
)

// ErrNoSnapshot is returned when the requested slot has never been saved.
var ErrNoSnapshot = errors.New("no snapshot in slot")

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		slot TEXT PRIMARY KEY,
		saved_at TEXT NOT NULL,
		data TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		atmosphere TEXT NOT NULL,
		happiness INTEGER NOT NULL,
		events INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_day_log_date ON day_log(date);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveSnapshot writes a world snapshot into a named slot (full replace).
func (s *Store) SaveSnapshot(slot string, snap engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (slot, saved_at, data) VALUES (?, ?, ?)",
		slot, snap.SavedAt.Format(time.RFC3339), string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("snapshot saved", "slot", slot, "date", snap.Calendar.Date.Format("2006-01-02"))
	return nil
}

// LoadSnapshot reads a snapshot from a named slot.
func (s *Store) LoadSnapshot(slot string) (engine.Snapshot, error) {
	var data string
	err := s.conn.Get(&data, "SELECT data FROM snapshots WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Snapshot{}, fmt.Errorf("%w: %s", ErrNoSnapshot, slot)
	}
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap engine.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return engine.Snapshot{}, fmt.Errorf("%w: %v", engine.ErrCorruptSave, err)
	}
	return snap, nil
}

// AppendDay records one completed day in the log.
func (s *Store) AppendDay(sum engine.DaySummary) error {
	_, err := s.conn.Exec(
		"INSERT INTO day_log (date, category, atmosphere, happiness, events) VALUES (?, ?, ?, ?, ?)",
		sum.Date.Format("2006-01-02"), sum.Category.String(), sum.Atmosphere, sum.Happiness, len(sum.Events),
	)
	return err
}

// DayRow is one recorded day.
type DayRow struct {
	Date       string `db:"date" json:"date"`
	Category   string `db:"category" json:"category"`
	Atmosphere string `db:"atmosphere" json:"atmosphere"`
	Happiness  int    `db:"happiness" json:"happiness"`
	Events     int    `db:"events" json:"events"`
}

// RecentDays returns the most recent N logged days, newest first.
func (s *Store) RecentDays(limit int) ([]DayRow, error) {
	var rows []DayRow
	err := s.conn.Select(&rows,
		"SELECT date, category, atmosphere, happiness, events FROM day_log ORDER BY id DESC LIMIT ?",
		limit,
	)
	return rows, err
}
