package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `
CREATE TABLE IF NOT EXISTS verification_results (
	id          BIGINT PRIMARY KEY,
	service     TEXT NOT NULL,
	category    TEXT NOT NULL,
	status      TEXT NOT NULL,
	input_data  JSONB NOT NULL DEFAULT '{}',
	response    JSONB,
	error_text  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
)`

// PostgresStore archives results durably. It mirrors the in-memory store's
// ID scheme: unix milliseconds, bumped on collision.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the archive table when missing.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure results schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Append(ctx context.Context, r Result) (Result, error) {
	now := time.Now()
	r.Timestamp = now
	r.ID = now.UnixMilli()

	input, err := json.Marshal(r.InputData)
	if err != nil {
		return Result{}, fmt.Errorf("marshal input data: %w", err)
	}
	var response []byte
	if r.Response != nil {
		if response, err = json.Marshal(r.Response); err != nil {
			return Result{}, fmt.Errorf("marshal response: %w", err)
		}
	}

	// Retry on primary-key collision: appends inside one millisecond land on
	// the same wall-clock ID.
	for attempt := 0; attempt < 1000; attempt++ {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO verification_results
				(id, service, category, status, input_data, response, error_text, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			r.ID, r.Service, r.Category, string(r.Status), input, nullableJSON(response), r.Error, r.Timestamp)
		if err == nil {
			return r, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.ID++
			continue
		}
		return Result{}, fmt.Errorf("insert result: %w", err)
	}
	return Result{}, fmt.Errorf("insert result: could not allocate unique id")
}

func (s *PostgresStore) List(ctx context.Context) ([]Result, error) {
	return s.Query(ctx, Filter{})
}

func (s *PostgresStore) Query(ctx context.Context, f Filter) ([]Result, error) {
	query := `
		SELECT id, service, category, status, input_data, response, error_text, created_at
		FROM verification_results WHERE TRUE`
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (service ILIKE $%d OR category ILIKE $%d)", len(args), len(args))
	}
	if f.Category != "" && f.Category != FilterAll {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Status != "" && f.Status != FilterAll {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r        Result
			status   string
			input    []byte
			response []byte
		)
		if err := rows.Scan(&r.ID, &r.Service, &r.Category, &status, &input, &response, &r.Error, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Status = Status(status)
		if err := json.Unmarshal(input, &r.InputData); err != nil {
			return nil, fmt.Errorf("decode input data: %w", err)
		}
		if len(response) > 0 {
			r.Response = &Response{}
			if err := json.Unmarshal(response, r.Response); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := "DELETE FROM verification_results WHERE id = ANY($1)"
	res, err := s.db.ExecContext(ctx, query, int64Array(ids))
	if err != nil {
		return 0, fmt.Errorf("delete results: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM verification_results"); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

// int64Array renders a postgres bigint array literal, since database/sql has
// no native slice binding.
func int64Array(ids []int64) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", id)
	}
	return out + "}"
}
