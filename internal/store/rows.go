package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/semestra/semestra/internal/records"
)

// importChunk bounds the rows per INSERT statement to stay under SQLite's
// host parameter limit.
const importChunk = 500

type rowRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *rowRepo) ImportRows(ctx context.Context, p records.SourceProfile, rows []records.Row) (ImportResult, error) {
	res := ImportResult{Batch: uuid.NewString()}
	if len(rows) == 0 {
		return res, nil
	}

	first, err := r.seq.Reserve(ctx, len(rows))
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for start := 0; start < len(rows); start += importChunk {
		end := min(start+importChunk, len(rows))

		ins := sqlite().Insert(resultRowsTable.Name).
			Columns("sequence", "timestamp", "batch", "source", "student", "payload")
		for i, row := range rows[start:end] {
			payload, err := json.Marshal(row)
			if err != nil {
				return ImportResult{}, fmt.Errorf("encode row %d: %w", start+i, err)
			}
			ins.Values(first+int64(start+i), now, res.Batch, p.ID, records.StudentName(row, p), string(payload))
		}

		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return ImportResult{}, fmt.Errorf("insert rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	res.Rows = len(rows)
	return res, nil
}

func (r *rowRepo) Rows(ctx context.Context, q RowQuery) ([]records.Row, error) {
	sel := sqlite().Select("payload").From(entsql.Table(resultRowsTable.Name))
	if q.Source != "" {
		sel.Where(entsql.EQ("source", q.Source))
	}
	if q.Student != "" {
		sel.Where(entsql.EqualFold("student", strings.TrimSpace(q.Student)))
	}
	if q.Batch != "" {
		sel.Where(entsql.EQ("batch", q.Batch))
	}
	sel.OrderBy("sequence")

	query, args := sel.Query()
	rs, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rs.Close()

	var out []records.Row
	for rs.Next() {
		var payload string
		if err := rs.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row, err := records.DecodeRow([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decode stored row: %w", err)
		}
		out = append(out, row)
	}
	return out, rs.Err()
}

func (r *rowRepo) Sources(ctx context.Context) ([]SourceSummary, error) {
	sel := sqlite().
		Select(
			"source",
			entsql.Count("*"),
			entsql.Count(entsql.Distinct("student")),
			entsql.Count(entsql.Distinct("batch")),
		).
		From(entsql.Table(resultRowsTable.Name)).
		GroupBy("source").
		OrderBy("source")

	query, args := sel.Query()
	rs, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rs.Close()

	var out []SourceSummary
	for rs.Next() {
		var s SourceSummary
		if err := rs.Scan(&s.Source, &s.Rows, &s.Students, &s.Batches); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, s)
	}
	return out, rs.Err()
}

func (r *rowRepo) DeleteBatch(ctx context.Context, batch string) (int, error) {
	query, args := sqlite().Delete(resultRowsTable.Name).
		Where(entsql.EQ("batch", batch)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete batch: %w", err)
	}
	return int(n), nil
}
