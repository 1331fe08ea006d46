package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
)

type item struct{ Name string }

type fakeRepo struct {
	items    []*item
	total    int64
	findErr  error
	countErr error

	found   []criteria.Criteria
	counted []criteria.Criteria
}

func (r *fakeRepo) FindByCriteria(_ context.Context, c criteria.Criteria) ([]*item, error) {
	r.found = append(r.found, c)
	return r.items, r.findErr
}

func (r *fakeRepo) CountByCriteria(_ context.Context, c criteria.Criteria) (int64, error) {
	r.counted = append(r.counted, c)
	return r.total, r.countErr
}

func (r *fakeRepo) FindByID(_ context.Context, entityID id.ID) (*item, error) {
	return nil, apperror.NewNotFound("row", entityID.String())
}

type fakeTx struct{ readOnly int }

func (m *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnly++
	return fn(ctx)
}

func newService(repo *fakeRepo, txm *fakeTx) *SearchService[*item] {
	cfg := SearchServiceConfig[*item]{Repo: repo, EntityName: "item", MaxLimit: 100}
	if txm != nil {
		cfg.TxManager = txm
	}
	return NewSearchService(cfg)
}

func TestSearchService_Search(t *testing.T) {
	repo := &fakeRepo{items: []*item{{Name: "a"}, {Name: "b"}}, total: 12}
	txm := &fakeTx{}
	svc := newService(repo, txm)

	c := criteria.New(criteria.MustFilter("name", criteria.Contains, "a")).WithLimit(2).WithOffset(4)
	result, err := svc.Search(context.Background(), c)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(12), result.TotalCount)
	assert.Equal(t, 2, result.Limit)
	assert.Equal(t, 4, result.Offset)
	assert.Equal(t, 1, txm.readOnly, "page and count share one snapshot")
	require.Len(t, repo.found, 1)
	require.Len(t, repo.counted, 1)
	assert.Equal(t, c, repo.counted[0], "count receives the same filters")
}

func TestSearchService_ClampsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, nil)

	_, err := svc.Search(context.Background(), criteria.New().WithLimit(5000))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), repo.found[0].Limit)

	_, err = svc.Search(context.Background(), criteria.New())
	require.NoError(t, err)
	assert.Zero(t, repo.found[1].Limit, "unbounded criteria stay unbounded")
}

func TestSearchService_EmptyResultIsNotNil(t *testing.T) {
	svc := newService(&fakeRepo{}, nil)

	result, err := svc.Search(context.Background(), criteria.New())
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestSearchService_RejectsInvalidCriteria(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, nil)

	c := criteria.Criteria{Filters: []criteria.Filter{
		{Field: "price", Operator: criteria.NotIn, Value: criteria.Scalar(1)},
	}}
	_, err := svc.Search(context.Background(), c)
	assert.True(t, apperror.IsMalformedFilterValue(err))
	assert.Empty(t, repo.found, "repository must not be reached")
}

func TestSearchService_Errors(t *testing.T) {
	t.Run("translation errors pass through", func(t *testing.T) {
		svc := newService(&fakeRepo{findErr: apperror.NewUnsupportedOperator("~")}, nil)
		_, err := svc.Search(context.Background(), criteria.New())
		assert.True(t, apperror.IsUnsupportedOperator(err))
	})

	t.Run("backend errors become internal", func(t *testing.T) {
		cause := errors.New("connection reset")
		svc := newService(&fakeRepo{countErr: cause}, nil)
		_, err := svc.Search(context.Background(), criteria.New())
		assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
		assert.ErrorIs(t, err, cause)
	})
}

func TestSearchService_GetByID(t *testing.T) {
	svc := newService(&fakeRepo{}, nil)
	missing := id.New()

	_, err := svc.GetByID(context.Background(), missing)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, "item", appErr.Details["entity"])
	assert.Equal(t, missing.String(), appErr.Details["id"])
}
