package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/endosim/simcheck/internal/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store persists header validation outcomes.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Record inserts rec and COPYs its columns in one transaction.
// rec.ValidatedAt is set from the database clock.
func (s *Store) Record(ctx context.Context, rec *model.ValidationRecord) error {
	query, args, err := psql.
		Insert("header_validations").
		Columns("validation_id", "run_id", "file_kind", "source_file", "file_sha256",
			"ok", "missing", "unused", "column_count").
		Values(rec.ValidationID, rec.RunID, rec.Kind, rec.SourceFile, rec.FileSHA256,
			rec.OK, nonNil(rec.Missing), nonNil(rec.Unused), len(rec.Columns)).
		Suffix("RETURNING validated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, query, args...).Scan(&rec.ValidatedAt); err != nil {
		return fmt.Errorf("insert header_validations: %w", err)
	}

	if len(rec.Columns) > 0 {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"header_columns"}, columnsTableColumns,
			NewColumnSource(rec.ValidationID, rec.Columns))
		if err != nil {
			return fmt.Errorf("copy header_columns: %w", err)
		}
		if n != int64(len(rec.Columns)) {
			return fmt.Errorf("copy header_columns: wrote %d of %d rows", n, len(rec.Columns))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. An empty kind matches all kinds.
// Columns are not loaded.
func (s *Store) Recent(ctx context.Context, kind string, limit int) ([]model.ValidationRecord, error) {
	b := psql.
		Select("validation_id", "run_id", "file_kind", "source_file", "file_sha256",
			"ok", "missing", "unused", "validated_at").
		From("header_validations").
		OrderBy("validated_at DESC", "validation_id").
		Limit(uint64(limit))
	if kind != "" {
		b = b.Where(sq.Eq{"file_kind": kind})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query header_validations: %w", err)
	}
	defer rows.Close()

	var out []model.ValidationRecord
	for rows.Next() {
		var r model.ValidationRecord
		if err := rows.Scan(&r.ValidationID, &r.RunID, &r.Kind, &r.SourceFile, &r.FileSHA256,
			&r.OK, &r.Missing, &r.Unused, &r.ValidatedAt); err != nil {
			return nil, fmt.Errorf("scan header_validations: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Columns returns the stored header columns of one validation, in file order.
func (s *Store) Columns(ctx context.Context, validationID uuid.UUID) ([]model.ColumnBinding, error) {
	query, args, err := psql.
		Select("position", "column_name", "raw_text", "matched_field").
		From("header_columns").
		Where(sq.Eq{"validation_id": validationID.String()}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query header_columns: %w", err)
	}
	defer rows.Close()

	var out []model.ColumnBinding
	for rows.Next() {
		var (
			c   model.ColumnBinding
			pos int32
		)
		if err := rows.Scan(&pos, &c.Name, &c.Raw, &c.Field); err != nil {
			return nil, fmt.Errorf("scan header_columns: %w", err)
		}
		c.Position = int(pos)
		out = append(out, c)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
