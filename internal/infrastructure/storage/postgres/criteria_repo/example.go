package criteria_repo

import (
	"context"

	"querykit/internal/domain/criteria"
	"querykit/internal/domain/example"
	"querykit/internal/infrastructure/storage/postgres"
	"querykit/internal/infrastructure/storage/postgres/converter"
	"querykit/internal/infrastructure/storage/postgres/query"
)

// Tables and query aliases of the example repository.
const (
	ExampleTable  = "examples"
	ExampleAlias  = "example"
	CategoryTable = "cat_categories"
	CategoryAlias = "category"
)

var _ example.Repository = (*ExampleRepo)(nil)

// ExampleRepo implements example.Repository.
// Queries left-join categories as "category", so filters and orders may
// target "category.name".
type ExampleRepo struct {
	*BaseRepo[*example.Example]
}

// NewExampleRepo creates a new example repository.
func NewExampleRepo(txm *postgres.TxManager, cv *converter.Converter) *ExampleRepo {
	return &ExampleRepo{
		BaseRepo: NewBaseRepo(txm, cv, Config[*example.Example]{
			Table:   ExampleTable,
			Alias:   ExampleAlias,
			Columns: exampleColumns(),
			Entity:  example.EntityName,
			NewFn:   func() *example.Example { return &example.Example{} },
			Prepare: func(q *query.SelectQuery) {
				q.LeftJoin(CategoryTable + " " + CategoryAlias + " ON " + CategoryAlias + ".id = " + ExampleAlias + ".category_id")
			},
		}),
	}
}

// FindMostPopular returns the first example by name, descending.
func (r *ExampleRepo) FindMostPopular(ctx context.Context) (*example.Example, error) {
	c := criteria.Criteria{
		Order: &criteria.Order{OrderBy: "name", Direction: criteria.Desc},
	}
	return r.FindOne(ctx, c)
}

// exampleColumns selects every stored column plus the joined category name.
func exampleColumns() []string {
	var cols []string
	for _, col := range postgres.ExtractDBColumns[example.Example]() {
		if col == "category_name" {
			continue
		}
		cols = append(cols, ExampleAlias+"."+col)
	}
	return append(cols, CategoryAlias+".name AS category_name")
}
