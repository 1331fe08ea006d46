package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoTransaction is returned by BatchWriter outside RunInTransaction.
var ErrNoTransaction = errors.New("batch write requires transaction context")

// BatchWriter loads rows in bulk inside the current transaction.
type BatchWriter struct {
	txManager *TxManager
}

// NewBatchWriter creates a new batch writer.
func NewBatchWriter(txManager *TxManager) *BatchWriter {
	return &BatchWriter{txManager: txManager}
}

// BatchQuery represents a query in a batch.
type BatchQuery struct {
	SQL  string
	Args []any
}

// Exec sends all queries in a single round-trip and stops at the first failure.
func (w *BatchWriter) Exec(ctx context.Context, queries []BatchQuery) error {
	tx := w.txManager.GetTx(ctx)
	if tx == nil {
		return ErrNoTransaction
	}
	if len(queries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range queries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch query %d: %w", i, err)
		}
	}
	return nil
}

// Copy bulk-inserts rows with the COPY protocol. Each row holds one value per
// column, in column order.
func (w *BatchWriter) Copy(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := w.txManager.GetTx(ctx)
	if tx == nil {
		return 0, ErrNoTransaction
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("copy into %s: row %d has %d values, want %d", table, i, len(row), len(columns))
		}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}
