package criteria

import (
	"strings"

	"querykit/internal/core/apperror"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection is case-insensitive; an empty string means ASC.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	}
	return "", apperror.NewValidation("invalid order direction").WithDetail("orderDirection", s)
}

// Order is a single-key sort directive.
type Order struct {
	OrderBy   string    `json:"orderBy"`
	Direction Direction `json:"orderDirection"`
}

// NewOrder builds a validated Order.
func NewOrder(field string, dir Direction) (Order, error) {
	o := Order{OrderBy: field, Direction: dir}
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Validate checks the field and the direction.
func (o Order) Validate() error {
	if o.OrderBy == "" {
		return apperror.NewInvalidFilterField(o.OrderBy).WithDetail("orderBy", o.OrderBy)
	}
	if o.Direction != Asc && o.Direction != Desc {
		return apperror.NewValidation("invalid order direction").WithDetail("orderDirection", string(o.Direction))
	}
	return nil
}
