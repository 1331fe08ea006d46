package criteria

import (
	"fmt"

	"querykit/internal/core/apperror"
)

// Criteria aggregates filters, ordering and pagination for a single query.
//
// Filters are always combined with AND; their order only fixes parameter
// naming and clause emission order. A zero Limit means unbounded and a zero
// Offset means no rows are skipped.
//
// Criteria is a value: the With* builders return modified copies and never
// touch the receiver.
type Criteria struct {
	Filters []Filter `json:"filters"`
	Order   *Order   `json:"order,omitempty"`
	Limit   uint64   `json:"limit,omitempty"`
	Offset  uint64   `json:"offset,omitempty"`
}

// New creates Criteria from filters, without order or pagination.
func New(filters ...Filter) Criteria {
	return Criteria{Filters: cloneFilters(filters)}
}

// WithFilter returns a copy with f appended.
func (c Criteria) WithFilter(f Filter) Criteria {
	out := c.clone()
	out.Filters = append(out.Filters, f)
	return out
}

// WithOrder returns a copy sorted by o.
func (c Criteria) WithOrder(o Order) Criteria {
	out := c.clone()
	out.Order = &o
	return out
}

// WithLimit returns a copy capped at n rows.
func (c Criteria) WithLimit(n uint64) Criteria {
	out := c.clone()
	out.Limit = n
	return out
}

// WithOffset returns a copy skipping n rows.
func (c Criteria) WithOffset(n uint64) Criteria {
	out := c.clone()
	out.Offset = n
	return out
}

// WithoutPagination returns a copy with the same filters and order but no
// limit or offset. Counting queries must use it.
func (c Criteria) WithoutPagination() Criteria {
	out := c.clone()
	out.Limit = 0
	out.Offset = 0
	return out
}

// WithoutOrder returns a copy with no sort directive.
func (c Criteria) WithoutOrder() Criteria {
	out := c.clone()
	out.Order = nil
	return out
}

// IsEmpty reports whether c imposes nothing at all.
func (c Criteria) IsEmpty() bool {
	return len(c.Filters) == 0 && c.Order == nil && c.Limit == 0 && c.Offset == 0
}

// Validate returns the first filter or order error.
func (c Criteria) Validate() error {
	for i, f := range c.Filters {
		if err := f.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("index", i)
			}
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	if c.Order != nil {
		if err := c.Order.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Criteria) clone() Criteria {
	out := c
	out.Filters = cloneFilters(c.Filters)
	if c.Order != nil {
		o := *c.Order
		out.Order = &o
	}
	return out
}

func cloneFilters(filters []Filter) []Filter {
	if len(filters) == 0 {
		return nil
	}
	out := make([]Filter, len(filters))
	copy(out, filters)
	return out
}
