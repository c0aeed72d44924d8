// Package catalogstore keeps an imported copy of the price sheet in SQLite and
// serves it back as a catalog source.
package catalogstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/finesi/internal/catalog"
)

const (
	table          = "catalog_rows"
	insertBatchLen = 200
)

// Stats contains import operation counters.
type Stats struct {
	Inserts int
	Deletes int
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Import replaces the stored rows with rows in one transaction. Importing the
// rows already stored changes nothing and reports zero counters.
func Import(ctx context.Context, db *sql.DB, rows []catalog.RawRow) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := readRows(ctx, tx)
	if err != nil {
		return Stats{}, err
	}
	if slices.Equal(existing, rows) {
		return Stats{}, tx.Commit()
	}

	stats := Stats{}

	query, args, err := sq.Delete(table).ToSql()
	if err != nil {
		return Stats{}, fmt.Errorf("build delete: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return Stats{}, fmt.Errorf("delete catalog rows: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return Stats{}, fmt.Errorf("count deleted rows: %w", err)
	}
	stats.Deletes = int(deleted)

	for start := 0; start < len(rows); start += insertBatchLen {
		end := min(start+insertBatchLen, len(rows))

		insert := sq.Insert(table).Columns("position", "category", "specification", "cost")
		for i, r := range rows[start:end] {
			insert = insert.Values(start+i, nullable(r.Category), nullable(r.Specification), nullable(r.Cost))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return Stats{}, fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return Stats{}, fmt.Errorf("insert catalog rows: %w", err)
		}
		stats.Inserts += end - start
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit import transaction: %w", err)
	}
	return stats, nil
}

// Source reads the stored rows in sheet order.
type Source struct {
	DB *sql.DB
}

func (s Source) ReadRows(ctx context.Context) ([]catalog.RawRow, error) {
	return readRows(ctx, s.DB)
}

func readRows(ctx context.Context, q queryer) ([]catalog.RawRow, error) {
	query, args, err := sq.Select("category", "specification", "cost").
		From(table).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog rows: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.RawRow, 0)
	for rows.Next() {
		var category, spec, cost sql.NullString
		if err := rows.Scan(&category, &spec, &cost); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, catalog.RawRow{
			Category:      category.String,
			Specification: spec.String,
			Cost:          cost.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
