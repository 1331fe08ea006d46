// Package criteria provides the backend-independent description of a query:
// a flat conjunction of filters, an optional single-key order and pagination.
package criteria

import (
	"strings"

	"querykit/internal/core/apperror"
)

// Operator is a filter comparison symbol.
type Operator string

const (
	Equals         Operator = "="
	NotEqual       Operator = "!="
	Greater        Operator = ">"
	Less           Operator = "<"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	Contains       Operator = "CONTAINS"     // case-insensitive substring
	NotContains    Operator = "NOT_CONTAINS" // case-insensitive substring
	In             Operator = "IN"           // membership, value is a list
	NotIn          Operator = "NOT_IN"       // membership, value is a list
)

var operators = []Operator{
	Equals, NotEqual, Greater, Less, GreaterOrEqual, LessOrEqual,
	Contains, NotContains, In, NotIn,
}

// short aliases used by query-string clients
var operatorAliases = map[string]Operator{
	"eq":        Equals,
	"neq":       NotEqual,
	"gt":        Greater,
	"lt":        Less,
	"gte":       GreaterOrEqual,
	"lte":       LessOrEqual,
	"contains":  Contains,
	"ncontains": NotContains,
	"in":        In,
	"nin":       NotIn,
}

// Operators returns the supported operators in declaration order.
func Operators() []Operator {
	out := make([]Operator, len(operators))
	copy(out, operators)
	return out
}

// ParseOperator maps a wire symbol or alias to an Operator.
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.TrimSpace(s))
	if op.Valid() {
		return op, nil
	}
	if alias, ok := operatorAliases[strings.ToLower(string(op))]; ok {
		return alias, nil
	}
	if upper := Operator(strings.ToUpper(string(op))); upper.Valid() {
		return upper, nil
	}
	return "", apperror.NewUnsupportedOperator(s)
}

// Valid reports whether op is one of the ten supported symbols.
func (op Operator) Valid() bool {
	switch op {
	case Equals, NotEqual, Greater, Less, GreaterOrEqual, LessOrEqual,
		Contains, NotContains, In, NotIn:
		return true
	}
	return false
}

// IsMembership reports whether op expects a list value.
func (op Operator) IsMembership() bool {
	return op == In || op == NotIn
}

// IsText reports whether op is a substring match.
func (op Operator) IsText() bool {
	return op == Contains || op == NotContains
}

func (op Operator) String() string {
	return string(op)
}
