// Package audit records every plan save attempt. Besides plain bookkeeping
// it is the observation channel for the known limitation that saves carry no
// sequence numbers: when a slow earlier write lands after a faster later
// one, the log shows the inversion.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry records metadata for a single save attempt.
type Entry struct {
	Year      int
	Week      int
	UpdatedBy string
	LatencyMS int64
	OK        bool
	Error     string
	Timestamp time.Time
}

// Store handles persistence of save log entries to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves an entry to the log.
func (s *Store) Record(ctx context.Context, e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO save_log (year, week, updated_by, latency_ms, ok, error, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Year, e.Week, e.UpdatedBy, e.LatencyMS, boolToInt(e.OK), e.Error, ts)
	if err != nil {
		return fmt.Errorf("failed to record save log entry: %w", err)
	}
	return nil
}

// RecentForWeek retrieves the latest save attempts for one plan, newest
// first.
func (s *Store) RecentForWeek(ctx context.Context, year, week, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, week, updated_by, latency_ms, ok, error, timestamp
		FROM save_log WHERE year = ? AND week = ?
		ORDER BY timestamp DESC LIMIT ?`,
		year, week, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query save log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		if err := rows.Scan(&e.Year, &e.Week, &e.UpdatedBy, &e.LatencyMS, &ok, &e.Error, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan save log row: %w", err)
		}
		e.OK = ok != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Cleanup removes entries older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM save_log WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up save log: %w", err)
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
