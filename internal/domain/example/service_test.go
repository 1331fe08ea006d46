package example

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
)

type stubRepo struct {
	popular *Example
	err     error
}

func (r *stubRepo) FindByCriteria(context.Context, criteria.Criteria) ([]*Example, error) {
	return []*Example{r.popular}, nil
}

func (r *stubRepo) CountByCriteria(context.Context, criteria.Criteria) (int64, error) {
	return 1, nil
}

func (r *stubRepo) FindByID(_ context.Context, entityID id.ID) (*Example, error) {
	return nil, apperror.NewNotFound(EntityName, entityID.String())
}

func (r *stubRepo) FindMostPopular(context.Context) (*Example, error) {
	return r.popular, r.err
}

func TestService_MostPopular(t *testing.T) {
	top := NewExample("Top hammer", decimal.RequireFromString("19.90"))
	svc := NewService(&stubRepo{popular: top}, nil)

	got, err := svc.MostPopular(context.Background())
	require.NoError(t, err)
	assert.Same(t, top, got)
}

func TestService_MostPopularErrors(t *testing.T) {
	svc := NewService(&stubRepo{err: apperror.NewNotFound(EntityName, "most popular")}, nil)
	_, err := svc.MostPopular(context.Background())
	assert.True(t, apperror.IsNotFound(err))

	svc = NewService(&stubRepo{err: errors.New("timeout")}, nil)
	_, err = svc.MostPopular(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
}

func TestService_SearchCapsLimit(t *testing.T) {
	svc := NewService(&stubRepo{popular: NewExample("a", decimal.Zero)}, nil)

	result, err := svc.Search(context.Background(), criteria.New().WithLimit(DefaultMaxLimit+1))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxLimit, result.Limit)
	assert.Equal(t, int64(1), result.TotalCount)
}

func TestNewExample(t *testing.T) {
	e := NewExample("Desk lamp", decimal.RequireFromString("31"))
	assert.NotEqual(t, id.Nil, e.ID)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Nil(t, e.CategoryID)
}
