package criteria

import (
	"fmt"
	"reflect"

	"querykit/internal/core/apperror"
)

// Filter is one atomic comparison.
// Field is either a simple column name ("name") or a relation-qualified
// path ("category.name").
type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// NewFilter builds a validated Filter.
// value may be a Value, a Go slice (becomes a list, except []byte) or any
// other operand (becomes a scalar). Arrays stay scalar so ids can be compared.
func NewFilter(field string, op Operator, value any) (Filter, error) {
	f := Filter{Field: field, Operator: op, Value: valueOf(value)}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// MustFilter is NewFilter that panics on error.
// Use only for constants and tests.
func MustFilter(field string, op Operator, value any) Filter {
	f, err := NewFilter(field, op, value)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks the field, the operator and the value shape.
func (f Filter) Validate() error {
	if f.Field == "" {
		return apperror.NewInvalidFilterField(f.Field)
	}
	if !f.Operator.Valid() {
		return apperror.NewUnsupportedOperator(string(f.Operator)).WithDetail("field", f.Field)
	}

	if f.Operator.IsMembership() {
		if !f.Value.IsList() {
			return apperror.NewMalformedFilterValue(f.Field, string(f.Operator), "list value required")
		}
		if f.Value.Len() == 0 {
			return apperror.NewMalformedFilterValue(f.Field, string(f.Operator), "list must not be empty")
		}
		return nil
	}

	if f.Value.IsList() {
		return apperror.NewMalformedFilterValue(f.Field, string(f.Operator), "scalar value required")
	}
	if f.Operator.IsText() && f.Value.Scalar() == nil {
		return apperror.NewMalformedFilterValue(f.Field, string(f.Operator), "substring must not be null")
	}
	return nil
}

func valueOf(value any) Value {
	switch v := value.(type) {
	case Value:
		return v
	case []byte:
		return Scalar(v)
	case nil:
		return Scalar(nil)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return Scalar(value)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return List(items...)
}

func (f Filter) String() string {
	if f.Value.IsList() {
		return fmt.Sprintf("%s %s %v", f.Field, f.Operator, f.Value.Items())
	}
	return fmt.Sprintf("%s %s %v", f.Field, f.Operator, f.Value.Scalar())
}
