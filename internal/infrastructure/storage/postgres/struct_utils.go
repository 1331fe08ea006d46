package postgres

import (
	"reflect"
	"sync"
)

// columnCache maps reflect.Type to []string of db tags.
var columnCache sync.Map

// ExtractDBColumns extracts all column names from struct "db" tags.
// Embedded structs (like entity.Base) are flattened recursively.
//
// Usage:
//
//	columns := ExtractDBColumns[example.Example]()
//	// Returns: ["id", "created_at", "updated_at", "name", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := columnCache.Load(t); ok {
		return clone(cached.([]string))
	}

	cols := extractColumnsFromType(t)
	columnCache.Store(t, cols)
	return clone(cols)
}

func extractColumnsFromType(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			cols = append(cols, extractColumnsFromType(field.Type)...)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}

	return cols
}

func clone(cols []string) []string {
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}
