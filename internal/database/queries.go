package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =============================================================================
// Divination Queries
// =============================================================================

// CreateDivination inserts a history record and fills in its ID and
// CreatedAt fields.
func (db *DB) CreateDivination(ctx context.Context, d *Divination) error {
	numbersJSON, err := json.Marshal(d.Numbers)
	if err != nil {
		return fmt.Errorf("marshal numbers: %w", err)
	}

	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO divinations (question, numbers, hexagram, bazi, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.Question, string(numbersJSON), d.Hexagram, d.Bazi, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert divination: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	d.ID = id
	d.CreatedAt = now
	return nil
}

// GetDivination retrieves a single history record by ID.
// Returns ErrNotFound if no record exists.
func (db *DB) GetDivination(ctx context.Context, id int64) (*Divination, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, question, numbers, hexagram, bazi, created_at
		FROM divinations
		WHERE id = ?
	`, id)

	d, err := scanDivination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query divination %d: %w", id, err)
	}
	return d, nil
}

// ListDivinations returns a page of history records, newest first,
// along with the total record count.
func (db *DB) ListDivinations(ctx context.Context, limit, offset int) (*DivinationPage, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM divinations").Scan(&total); err != nil {
		return nil, fmt.Errorf("count divinations: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, question, numbers, hexagram, bazi, created_at
		FROM divinations
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query divinations: %w", err)
	}
	defer rows.Close()

	divinations := []Divination{}
	for rows.Next() {
		d, err := scanDivination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan divination: %w", err)
		}
		divinations = append(divinations, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate divinations: %w", err)
	}

	return &DivinationPage{
		Divinations: divinations,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// DeleteDivination removes a history record by ID.
// Returns ErrNotFound if no record exists.
func (db *DB) DeleteDivination(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM divinations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete divination %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDivination reads one divination row, decoding the numbers JSON and
// the stored timestamp.
func scanDivination(s scanner) (*Divination, error) {
	var d Divination
	var numbersJSON, createdAt string

	if err := s.Scan(&d.ID, &d.Question, &numbersJSON, &d.Hexagram, &d.Bazi, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(numbersJSON), &d.Numbers); err != nil {
		return nil, fmt.Errorf("unmarshal numbers: %w", err)
	}
	d.CreatedAt = parseTimestamp(createdAt)

	return &d, nil
}
