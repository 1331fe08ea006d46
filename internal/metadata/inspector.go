package metadata

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
)

var (
	comparisonOps = []criteria.Operator{
		criteria.Equals, criteria.NotEqual,
		criteria.Greater, criteria.Less, criteria.GreaterOrEqual, criteria.LessOrEqual,
		criteria.In, criteria.NotIn,
	}
	equalityOps = []criteria.Operator{
		criteria.Equals, criteria.NotEqual, criteria.In, criteria.NotIn,
	}
)

// Inspect analyzes a struct and returns its EntityDef.
// Only fields with a "db" tag are exposed; `search:"-"` hides a field.
func Inspect(entity any, name, table string) EntityDef {
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if name == "" {
		name = t.Name()
	}

	def := EntityDef{
		Name:      name,
		Label:     name,
		TableName: table,
		Fields:    make([]FieldDef, 0),
	}
	inspectStruct(t, &def)
	return def
}

func inspectStruct(t reflect.Type, def *EntityDef) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			inspectStruct(field.Type, def)
			continue
		}

		if !field.IsExported() {
			continue
		}

		column := field.Tag.Get("db")
		if column == "" || column == "-" || field.Tag.Get("search") == "-" {
			continue
		}

		fDef := FieldDef{
			Name:     column,
			JSONName: jsonName(field),
			Sortable: true,
		}
		mapFieldType(&fDef, field)
		def.Fields = append(def.Fields, fDef)
	}
}

func mapFieldType(def *FieldDef, field reflect.StructField) {
	t := field.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t {
	case reflect.TypeOf(id.ID{}):
		def.Type = TypeReference
		def.Operators = equalityOps
		return
	case reflect.TypeOf(time.Time{}):
		def.Type = TypeDate
		def.Operators = comparisonOps
		return
	case reflect.TypeOf(decimal.Decimal{}):
		def.Type = TypeMoney
		def.Operators = comparisonOps
		return
	}

	switch t.Kind() {
	case reflect.String:
		def.Type = TypeString
		def.Operators = criteria.Operators()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		def.Type = TypeInteger
		def.Operators = comparisonOps
	case reflect.Float32, reflect.Float64:
		def.Type = TypeNumber
		def.Operators = comparisonOps
	case reflect.Bool:
		def.Type = TypeBoolean
		def.Operators = []criteria.Operator{criteria.Equals, criteria.NotEqual}
		def.Sortable = false
	default:
		def.Type = TypeString
		def.Operators = equalityOps
		def.Sortable = false
	}
}

func jsonName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] != "" && parts[0] != "-" {
			return parts[0]
		}
	}
	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
