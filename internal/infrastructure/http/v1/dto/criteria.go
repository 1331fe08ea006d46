package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"querykit/internal/core/apperror"
	"querykit/internal/domain/criteria"
)

// Search defaults applied when the query string leaves them out.
const (
	DefaultOrderBy = "id"
	DefaultLimit   = 10
	MaxLimit       = 1000
)

// SearchRequest is the query string of a list endpoint.
//
//	GET /examples?name=top&filter=[{"field":"price","operator":">","value":10}]&orderBy=price&orderDirection=DESC&limit=20
type SearchRequest struct {
	// Name adds a CONTAINS filter on the name field.
	Name string `form:"name"`

	// Filter is a JSON array of {field, operator, value} objects.
	Filter string `form:"filter"`

	OrderBy        string `form:"orderBy"`
	OrderDirection string `form:"orderDirection" binding:"omitempty,oneof=ASC DESC asc desc"`
	Limit          *int   `form:"limit" binding:"omitempty,min=0,max=1000"`
	Offset         *int   `form:"offset" binding:"omitempty,min=0"`
}

// Defaults fills in ordering and pagination left out of the request.
func (r *SearchRequest) Defaults() {
	if r.OrderBy == "" {
		r.OrderBy = DefaultOrderBy
	}
	if r.OrderDirection == "" {
		r.OrderDirection = string(criteria.Asc)
	}
	if r.Limit == nil {
		limit := DefaultLimit
		r.Limit = &limit
	}
	if r.Offset == nil {
		offset := 0
		r.Offset = &offset
	}
}

// ToCriteria builds the criteria described by the request.
// The name filter comes first, followed by the filters of the JSON array.
func (r SearchRequest) ToCriteria() (criteria.Criteria, error) {
	r.Defaults()

	var filters []criteria.Filter
	if r.Name != "" {
		f, err := criteria.NewFilter("name", criteria.Contains, r.Name)
		if err != nil {
			return criteria.Criteria{}, err
		}
		filters = append(filters, f)
	}

	if r.Filter != "" {
		parsed, err := ParseFilters(r.Filter)
		if err != nil {
			return criteria.Criteria{}, err
		}
		filters = append(filters, parsed...)
	}

	dir, err := criteria.ParseDirection(r.OrderDirection)
	if err != nil {
		return criteria.Criteria{}, err
	}
	order, err := criteria.NewOrder(r.OrderBy, dir)
	if err != nil {
		return criteria.Criteria{}, err
	}

	return criteria.New(filters...).
		WithOrder(order).
		WithLimit(uint64(*r.Limit)).
		WithOffset(uint64(*r.Offset)), nil
}

type filterItem struct {
	Field    string         `json:"field"`
	Operator string         `json:"operator"`
	Value    criteria.Value `json:"value"`
}

// ParseFilters decodes a JSON filter array. Operators may be given by symbol
// ("=", "IN") or alias ("eq", "in").
func ParseFilters(raw string) ([]criteria.Filter, error) {
	var items []filterItem
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, apperror.NewValidation("invalid filter format (json array expected)").
			WithDetail("error", err.Error())
	}

	filters := make([]criteria.Filter, 0, len(items))
	for i, item := range items {
		op, err := criteria.ParseOperator(item.Operator)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}

		f := criteria.Filter{
			Field:    item.Field,
			Operator: op,
			Value:    normalizeValue(item.Value),
		}
		if err := f.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// normalizeValue turns JSON numbers into int64 or decimal.Decimal so they bind
// as numeric parameters.
func normalizeValue(v criteria.Value) criteria.Value {
	if !v.IsList() {
		return criteria.Scalar(normalizeNumber(v.Scalar()))
	}
	items := v.Items()
	for i := range items {
		items[i] = normalizeNumber(items[i])
	}
	return criteria.List(items...)
}

func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if d, err := decimal.NewFromString(n.String()); err == nil {
		return d
	}
	return n.String()
}
