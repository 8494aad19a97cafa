package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// PostgresRepository persists finished runs into Postgres for audit.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveRun stores the run header and one row per publish result in a
// single transaction.
func (r *PostgresRepository) SaveRun(ctx context.Context, run domain.RunRecord) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insertRun := r.builder.
		Insert("post_runs").
		Columns("id", "topic", "auto_posted", "finished_at").
		Values(run.ID, run.Topic, run.AutoPosted, run.FinishedAt)

	query, args, err := insertRun.ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(run.Results) > 0 {
		insertResults := r.builder.
			Insert("post_results").
			Columns("run_id", "item_index", "status", "post_text", "post_id", "post_url", "error_detail")
		for _, result := range run.Results {
			insertResults = insertResults.Values(
				run.ID,
				result.Index,
				string(result.Status),
				result.Text,
				result.PostID,
				result.PostURL,
				result.Error,
			)
		}

		query, args, err = insertResults.ToSql()
		if err != nil {
			return fmt.Errorf("build result insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}
