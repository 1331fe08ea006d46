package criteria_repo

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querykit/internal/core/apperror"
	"querykit/internal/domain/criteria"
)

func newTestRepo() *ExampleRepo {
	return NewExampleRepo(nil, nil)
}

func TestExampleRepo_Columns(t *testing.T) {
	cols := exampleColumns()
	assert.Contains(t, cols, "example.id")
	assert.Contains(t, cols, "example.price")
	assert.Contains(t, cols, "category.name AS category_name")
	assert.NotContains(t, cols, "example.category_name")
}

func TestExampleRepo_FindSQL(t *testing.T) {
	repo := newTestRepo()
	c := criteria.New(
		criteria.MustFilter("name", criteria.Contains, "top"),
		criteria.MustFilter("category.name", criteria.In, []string{"tools", "toys"}),
		criteria.MustFilter("price", criteria.GreaterOrEqual, decimal.RequireFromString("9.99")),
	).WithOrder(criteria.Order{OrderBy: "name", Direction: criteria.Desc}).WithLimit(20)

	q, err := repo.Apply(c)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "SELECT example.id, "), sql)
	assert.Contains(t, sql, " FROM examples example LEFT JOIN cat_categories category ON category.id = example.category_id")
	assert.True(t, strings.HasSuffix(sql,
		"WHERE lower(example.name) like lower($1) AND category.name in ($2, $3) AND example.price >= $4 ORDER BY example.name DESC LIMIT 20"), sql)
	assert.Equal(t, []any{"%top%", "tools", "toys", decimal.RequireFromString("9.99")}, args)
}

func TestExampleRepo_CountIgnoresPagination(t *testing.T) {
	repo := newTestRepo()
	filters := []criteria.Filter{
		criteria.MustFilter("name", criteria.Contains, "top"),
		criteria.MustFilter("price", criteria.Less, 100),
	}
	paged := criteria.New(filters...).
		WithOrder(criteria.Order{OrderBy: "price", Direction: criteria.Asc}).
		WithLimit(10).
		WithOffset(30)

	find, err := repo.Apply(paged)
	require.NoError(t, err)
	count, err := repo.Apply(paged.WithoutPagination().WithoutOrder())
	require.NoError(t, err)

	assert.Equal(t, find.Predicates(), count.Predicates(), "filters are applied identically")
	assert.Zero(t, count.Limit())
	assert.Zero(t, count.Offset())

	sql, args, err := count.CountSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) FROM examples example LEFT JOIN cat_categories category ON category.id = example.category_id WHERE lower(example.name) like lower($1) AND example.price < $2",
		sql)
	assert.Equal(t, []any{"%top%", 100}, args)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}

func TestExampleRepo_FreshContextPerCall(t *testing.T) {
	repo := newTestRepo()
	c := criteria.New(criteria.MustFilter("name", criteria.Equals, "a"))

	first, err := repo.Apply(c)
	require.NoError(t, err)
	second, err := repo.Apply(c)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Len(t, second.Predicates(), 1)
}

func TestExampleRepo_TranslationErrorsPropagate(t *testing.T) {
	repo := newTestRepo()
	c := criteria.Criteria{Filters: []criteria.Filter{
		{Field: "price", Operator: criteria.In, Value: criteria.List()},
	}}

	_, err := repo.Apply(c)
	assert.True(t, apperror.IsMalformedFilterValue(err))
}

func TestBaseRepo_WrapErr(t *testing.T) {
	repo := newTestRepo()

	err := repo.wrapErr("find by criteria", &pgconn.PgError{Code: pgUndefinedTable, Message: `missing FROM-clause entry for table "user"`})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAmbiguousField, appErr.Code)

	err = repo.wrapErr("find by criteria", &pgconn.PgError{Code: pgUndefinedColumn, Message: "column example.nope does not exist"})
	assert.True(t, apperror.HasCode(err, apperror.CodeAmbiguousField))

	boom := errors.New("connection reset")
	err = repo.wrapErr("count by criteria", boom)
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperror.IsAppError(err))
	assert.Equal(t, "count by criteria examples: connection reset", err.Error())
}
