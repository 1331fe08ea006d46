package criteria

import (
	"bytes"
	"encoding/json"
)

// Value is a filter operand: either a single scalar or an ordered list.
// The zero Value is a nil scalar.
type Value struct {
	scalar any
	items  []any
	list   bool
}

// Scalar wraps a single comparison operand.
func Scalar(v any) Value {
	return Value{scalar: v}
}

// List wraps an ordered sequence of operands.
func List(vs ...any) Value {
	items := make([]any, len(vs))
	copy(items, vs)
	return Value{items: items, list: true}
}

// ListOf wraps a typed slice as a list value.
func ListOf[T any](vs []T) Value {
	items := make([]any, len(vs))
	for i, v := range vs {
		items[i] = v
	}
	return Value{items: items, list: true}
}

// IsList reports whether the value is a sequence.
func (v Value) IsList() bool {
	return v.list
}

// Scalar returns the scalar operand, or nil for lists.
func (v Value) Scalar() any {
	if v.list {
		return nil
	}
	return v.scalar
}

// Items returns a copy of the list operands, or nil for scalars.
func (v Value) Items() []any {
	if !v.list {
		return nil
	}
	out := make([]any, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of list items; scalars count as one.
func (v Value) Len() int {
	if v.list {
		return len(v.items)
	}
	return 1
}

// MarshalJSON encodes lists as arrays and scalars as-is.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON decodes arrays into lists and everything else into a scalar.
// Numbers are kept as json.Number so integer operands are not widened to float64.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []any
		if err := dec.Decode(&items); err != nil {
			return err
		}
		if items == nil {
			items = []any{}
		}
		*v = Value{items: items, list: true}
		return nil
	}

	var scalar any
	if err := dec.Decode(&scalar); err != nil {
		return err
	}
	*v = Value{scalar: scalar}
	return nil
}
