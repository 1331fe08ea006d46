package main

import (
	"querykit/internal/domain/example"
	"querykit/internal/infrastructure/storage/postgres/criteria_repo"
	"querykit/internal/metadata"
)

// setupMetadataRegistry registers every searchable entity. Relation names
// must match the aliases the repositories join under.
func setupMetadataRegistry() *metadata.Registry {
	reg := metadata.NewRegistry()

	category := metadata.Inspect(example.Category{}, "category", criteria_repo.CategoryTable)
	category.Label = "Categories"

	examples := metadata.Inspect(example.Example{}, example.EntityName, criteria_repo.ExampleTable).
		WithRelation(criteria_repo.CategoryAlias, category)
	examples.Label = "Examples"

	reg.Register(examples)
	reg.Register(category)

	return reg
}
