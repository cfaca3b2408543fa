// Package workoutlog persists logged exercise results. The progress
// report tool reads from here; when the log is empty it is seeded with
// sample entries so a fresh install still produces a useful report.
package workoutlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // pure-Go SQLite driver for database/sql
)

// Entry is one logged exercise result. Value is free text ("25",
// "45 min", "60 sec") — exercises are measured in different units and we
// do not normalize them.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Exercise string    `json:"exercise"`
	Value    string    `json:"value"`
	LoggedAt time.Time `json:"logged_at"`
}

// Store manages workout log persistence.
type Store struct {
	db *sql.DB
}

// Open creates a store backed by the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewStoreWithDB creates a store using an existing database connection.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS workout_log (
			id        TEXT PRIMARY KEY,
			exercise  TEXT NOT NULL,
			value     TEXT NOT NULL,
			logged_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_workout_log_exercise ON workout_log(exercise);
		CREATE INDEX IF NOT EXISTS idx_workout_log_logged ON workout_log(logged_at DESC);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a new exercise result.
func (s *Store) Add(exercise, value string) (*Entry, error) {
	if exercise == "" {
		return nil, fmt.Errorf("exercise is required")
	}
	if value == "" {
		return nil, fmt.Errorf("value is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
		INSERT INTO workout_log (id, exercise, value, logged_at)
		VALUES (?, ?, ?, ?)
	`, id.String(), exercise, value, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}

	return &Entry{ID: id, Exercise: exercise, Value: value, LoggedAt: now}, nil
}

// Latest returns the most recent entry per exercise, ordered by exercise
// name. This is the view the progress report presents.
func (s *Store) Latest() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, exercise, value, MAX(logged_at) AS logged_at
		FROM workout_log
		GROUP BY exercise
		ORDER BY exercise
	`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// All returns every logged entry, newest first.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, exercise, value, logged_at FROM workout_log
		ORDER BY logged_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of logged entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM workout_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// sampleEntries are the seed rows for an empty log.
var sampleEntries = []struct{ Exercise, Value string }{
	{"Push-ups", "25"},
	{"Leg Raises", "7"},
	{"Cardio", "45 min"},
	{"Squats", "20"},
	{"Pull-ups", "8"},
	{"Plank", "60 sec"},
}

// SeedSampleData inserts sample entries when the log is empty, returning
// how many were added. A non-empty log is left untouched.
func (s *Store) SeedSampleData() (int, error) {
	n, err := s.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for _, e := range sampleEntries {
		if _, err := s.Add(e.Exercise, e.Value); err != nil {
			return 0, fmt.Errorf("seed %s: %w", e.Exercise, err)
		}
	}
	return len(sampleEntries), nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var idStr, loggedStr string
		if err := rows.Scan(&idStr, &e.Exercise, &e.Value, &loggedStr); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.ID, _ = uuid.Parse(idStr)
		e.LoggedAt, _ = time.Parse(time.RFC3339, loggedStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
