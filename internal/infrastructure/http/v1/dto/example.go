package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"querykit/internal/domain/example"
)

// ExampleResponse is the API representation of an example.
type ExampleResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromExample converts an entity to its response.
func FromExample(e *example.Example) ExampleResponse {
	resp := ExampleResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Description:  e.Description,
		Price:        e.Price,
		CategoryName: e.CategoryName,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.CategoryID != nil {
		s := e.CategoryID.String()
		resp.CategoryID = &s
	}
	return resp
}
