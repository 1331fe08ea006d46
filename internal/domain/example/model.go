// Package example provides the Example entity used to demonstrate criteria
// search, together with its Category relation.
package example

import (
	"github.com/shopspring/decimal"

	"querykit/internal/core/entity"
	"querykit/internal/core/id"
)

// EntityName names examples in errors, logs and metadata.
const EntityName = "example"

// Example is a searchable item.
type Example struct {
	entity.Base

	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CategoryID  *id.ID          `db:"category_id" json:"categoryId,omitempty"`

	// CategoryName is read from the joined category, never stored on the row.
	CategoryName *string `db:"category_name" json:"categoryName,omitempty" search:"-"`
}

// Category groups examples; it is joined into example queries as "category".
type Category struct {
	entity.Base

	Name string `db:"name" json:"name"`
}

// NewExample creates an Example with a generated ID.
func NewExample(name string, price decimal.Decimal) *Example {
	return &Example{
		Base:  entity.NewBase(),
		Name:  name,
		Price: price,
	}
}
