// Package criteria_repo provides PostgreSQL repositories that search by criteria.
package criteria_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
	"querykit/internal/infrastructure/storage/postgres"
	"querykit/internal/infrastructure/storage/postgres/converter"
	"querykit/internal/infrastructure/storage/postgres/query"
	"querykit/pkg/logger"
)

var tracer = otel.Tracer("querykit/criteria_repo")

// PostgreSQL error codes for unresolvable references.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// Config describes the collection a BaseRepo queries.
type Config[T any] struct {
	Table   string
	Alias   string
	Columns []string

	// Entity names the collection in errors and logs.
	Entity string

	NewFn func() T

	// Prepare adds joins and repository-owned conditions to every new query.
	Prepare func(q *query.SelectQuery)
}

// BaseRepo provides criteria search for one entity type.
// Embed this in specific repositories.
type BaseRepo[T any] struct {
	txm       *postgres.TxManager
	converter *converter.Converter

	table   string
	alias   string
	columns []string
	entity  string
	newFn   func() T
	prepare func(q *query.SelectQuery)
}

// NewBaseRepo creates a new base repository.
func NewBaseRepo[T any](txm *postgres.TxManager, cv *converter.Converter, cfg Config[T]) *BaseRepo[T] {
	alias := cfg.Alias
	if alias == "" {
		alias = cfg.Table
	}
	entity := cfg.Entity
	if entity == "" {
		entity = cfg.Table
	}
	if cv == nil {
		cv = converter.New()
	}

	return &BaseRepo[T]{
		txm:       txm,
		converter: cv,
		table:     cfg.Table,
		alias:     alias,
		columns:   cfg.Columns,
		entity:    entity,
		newFn:     cfg.NewFn,
		prepare:   cfg.Prepare,
	}
}

// NewQuery returns a fresh query context. Contexts are never shared between calls.
func (r *BaseRepo[T]) NewQuery() *query.SelectQuery {
	q := query.New(r.table, r.alias, r.columns...)
	if r.prepare != nil {
		r.prepare(q)
	}
	return q
}

// Apply translates c onto a fresh query.
func (r *BaseRepo[T]) Apply(c criteria.Criteria) (*query.SelectQuery, error) {
	q := r.NewQuery()
	if _, err := r.converter.Apply(q, c); err != nil {
		return nil, err
	}
	return q, nil
}

// FindByCriteria returns the entities matching c.
func (r *BaseRepo[T]) FindByCriteria(ctx context.Context, c criteria.Criteria) ([]T, error) {
	ctx, span := r.startSpan(ctx, "find_by_criteria", c)
	defer span.End()

	q, err := r.Apply(c)
	if err != nil {
		return nil, err
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, r.wrapErr("find by criteria", err)
	}

	logger.Debug(ctx, "find by criteria", "table", r.table, "sql", sql, "params", q.NamedArgs(), "rows", len(items))
	return items, nil
}

// CountByCriteria counts matches of c's filters. Pagination and order are
// stripped before translation, so no LIMIT or OFFSET is ever bound.
func (r *BaseRepo[T]) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	ctx, span := r.startSpan(ctx, "count_by_criteria", c)
	defer span.End()

	q, err := r.Apply(c.WithoutPagination().WithoutOrder())
	if err != nil {
		return 0, err
	}

	sql, args, err := q.CountSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, r.wrapErr("count by criteria", err)
	}

	return total, nil
}

// FindOne returns the first entity matching c.
func (r *BaseRepo[T]) FindOne(ctx context.Context, c criteria.Criteria) (T, error) {
	q, err := r.Apply(c.WithLimit(1))
	if err != nil {
		var zero T
		return zero, err
	}
	return r.get(ctx, q, "matching criteria")
}

// FindByID retrieves entity by ID.
func (r *BaseRepo[T]) FindByID(ctx context.Context, entityID id.ID) (T, error) {
	q := r.NewQuery().Where(squirrel.Eq{r.alias + ".id": entityID})
	q.Take(1)
	return r.get(ctx, q, entityID.String())
}

func (r *BaseRepo[T]) get(ctx context.Context, q *query.SelectQuery, ref string) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			var zero T
			return zero, apperror.NewNotFound(r.entity, ref)
		}
		return entity, r.wrapErr("get", err)
	}

	return entity, nil
}

// wrapErr maps unresolvable references to AMBIGUOUS_FIELD_REFERENCE; every
// other backend failure is wrapped as-is.
func (r *BaseRepo[T]) wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn) {
		return apperror.NewAmbiguousField(pgErr.Message).
			WithDetail("entity", r.entity).
			WithCause(err)
	}
	return fmt.Errorf("%s %s: %w", op, r.table, err)
}

func (r *BaseRepo[T]) startSpan(ctx context.Context, name string, c criteria.Criteria) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repo."+name,
		trace.WithAttributes(
			attribute.String("db.table", r.table),
			attribute.Int("criteria.filters", len(c.Filters)),
			attribute.Int64("criteria.limit", int64(c.Limit)),
			attribute.Int64("criteria.offset", int64(c.Offset)),
		))
}
