// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs fn inside a database transaction.
// Nested calls reuse the transaction already in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction where every statement
	// sees the same snapshot.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
