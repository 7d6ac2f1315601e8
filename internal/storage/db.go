package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"elitehire/internal/assessment"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() error {
	return db.connection.Close()
}

// EnsureSchema creates the results table when it does not exist yet, matching
// the create-on-first-write behaviour of the original table store.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.connection.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS assessment_results (
			id             SERIAL PRIMARY KEY,
			row_key        TEXT NOT NULL UNIQUE,
			partition_key  TEXT NOT NULL,
			entry_type     TEXT NOT NULL,
			full_name      TEXT NOT NULL,
			phone          TEXT NOT NULL DEFAULT '',
			id_no          TEXT NOT NULL DEFAULT '',
			domain         TEXT NOT NULL DEFAULT '',
			score          INTEGER NOT NULL,
			recommendation TEXT NOT NULL DEFAULT '',
			summary        TEXT NOT NULL DEFAULT '',
			responses      JSONB,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("creating assessment_results table: %w", err)
	}
	return nil
}

// SaveResult inserts one assessment outcome.
func (db *DB) SaveResult(ctx context.Context, row *ResultRow) error {
	var responses []byte
	if row.Responses != nil {
		var err error
		responses, err = json.Marshal(row.Responses)
		if err != nil {
			return fmt.Errorf("encoding responses: %w", err)
		}
	}

	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO assessment_results
		(row_key, partition_key, entry_type, full_name, phone, id_no, domain,
		 score, recommendation, summary, responses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := db.connection.ExecContext(ctx, query,
		row.RowKey,
		row.PartitionKey,
		row.EntryType,
		row.FullName,
		row.Phone,
		row.IDNo,
		row.Domain,
		row.Score,
		row.Recommendation,
		row.Summary,
		nullableJSON(responses),
		createdAt,
	)
	return err
}

// SearchResults returns stored results matching the dashboard search term
// against name, ID number and domain. An empty term returns everything,
// newest first.
func (db *DB) SearchResults(ctx context.Context, term string) ([]*ResultRow, error) {
	query := `SELECT row_key, partition_key, entry_type, full_name, phone, id_no,
		domain, score, recommendation, summary, responses, created_at
		FROM assessment_results`

	var args []interface{}
	if term != "" {
		query += ` WHERE full_name ILIKE $1 OR id_no ILIKE $1 OR domain ILIKE $1`
		args = append(args, "%"+term+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ResultRow
	for rows.Next() {
		row, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// ListAutomatic returns all full interview results, for maintenance rescoring.
func (db *DB) ListAutomatic(ctx context.Context) ([]*ResultRow, error) {
	query := `SELECT row_key, partition_key, entry_type, full_name, phone, id_no,
		domain, score, recommendation, summary, responses, created_at
		FROM assessment_results
		WHERE entry_type = $1
		ORDER BY created_at`

	rows, err := db.connection.QueryContext(ctx, query, EntryAutomatic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ResultRow
	for rows.Next() {
		row, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// UpdateAssessment rewrites the derived fields of a stored result, used when
// the question bank changes and records are rescored.
func (db *DB) UpdateAssessment(ctx context.Context, rowKey string, score int, recommendation, summary string) error {
	_, err := db.connection.ExecContext(ctx, `
		UPDATE assessment_results
		SET score = $2, recommendation = $3, summary = $4
		WHERE row_key = $1`,
		rowKey, score, recommendation, summary)
	return err
}

// Stats aggregates dashboard numbers: totals, average score, recommended
// count and a per-domain breakdown.
func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByDomain: make(map[string]int)}

	err := db.connection.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(score), 0),
		       COUNT(*) FILTER (WHERE recommendation = $1)
		FROM assessment_results`, assessment.Recommended).
		Scan(&stats.Total, &stats.AverageScore, &stats.Recommended)
	if err != nil {
		return nil, err
	}

	rows, err := db.connection.QueryContext(ctx, `
		SELECT partition_key, COUNT(*)
		FROM assessment_results
		GROUP BY partition_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var domain string
		var count int
		if err := rows.Scan(&domain, &count); err != nil {
			return nil, err
		}
		stats.ByDomain[domain] = count
	}
	return stats, rows.Err()
}

func scanResultRow(rows *sql.Rows) (*ResultRow, error) {
	row := &ResultRow{}
	var responses sql.NullString
	if err := rows.Scan(
		&row.RowKey,
		&row.PartitionKey,
		&row.EntryType,
		&row.FullName,
		&row.Phone,
		&row.IDNo,
		&row.Domain,
		&row.Score,
		&row.Recommendation,
		&row.Summary,
		&responses,
		&row.CreatedAt,
	); err != nil {
		return nil, err
	}

	if responses.Valid && strings.TrimSpace(responses.String) != "" {
		if err := json.Unmarshal([]byte(responses.String), &row.Responses); err != nil {
			return nil, fmt.Errorf("decoding responses for %s: %w", row.RowKey, err)
		}
	}
	return row, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
