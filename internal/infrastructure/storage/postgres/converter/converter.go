// Package converter translates criteria.Criteria into parameterized
// predicates, a sort directive and pagination on a query context.
//
// Values are never interpolated into clause text; every operand is bound
// as a named parameter. Translation is all-or-nothing: a Criteria with one
// invalid filter leaves the context untouched.
package converter

import (
	"strconv"
	"strings"

	"querykit/internal/core/apperror"
	"querykit/internal/domain/criteria"
)

// QueryContext is the mutable query being built.
// query.SelectQuery is the PostgreSQL implementation.
type QueryContext interface {
	// Alias identifies the primary collection; bare field names are qualified with it.
	Alias() string
	// AndWhere conjoins a predicate and binds its named parameters.
	AndWhere(clause string, params map[string]any) error
	// HasParam reports whether a parameter name is already bound.
	HasParam(name string) bool
	OrderBy(field string, dir criteria.Direction)
	Take(limit uint64)
	Skip(offset uint64)
}

// Predicate is one translated filter.
type Predicate struct {
	Clause string
	Param  string
	Value  any
}

// Converter is stateless and safe for concurrent use.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// Apply translates c onto qc and returns qc for chaining.
// On error qc is left exactly as it was passed in.
func (cv *Converter) Apply(qc QueryContext, c criteria.Criteria) (QueryContext, error) {
	alias := qc.Alias()

	preds := make([]Predicate, 0, len(c.Filters))
	for i, f := range c.Filters {
		p, err := cv.Translate(alias, f, i)
		if err != nil {
			return qc, err
		}
		if qc.HasParam(p.Param) {
			return qc, apperror.NewParameterConflict(p.Param).WithDetail("field", f.Field)
		}
		preds = append(preds, p)
	}

	var orderField string
	if c.Order != nil {
		if err := c.Order.Validate(); err != nil {
			return qc, err
		}
		orderField = ResolveField(alias, c.Order.OrderBy)
	}

	for _, p := range preds {
		if err := qc.AndWhere(p.Clause, map[string]any{p.Param: p.Value}); err != nil {
			return qc, err
		}
	}

	if c.Order != nil {
		qc.OrderBy(orderField, c.Order.Direction)
	}
	if c.Limit > 0 {
		qc.Take(c.Limit)
	}
	if c.Offset > 0 {
		qc.Skip(c.Offset)
	}

	return qc, nil
}

// Translate builds the predicate for the filter at position index.
func (cv *Converter) Translate(alias string, f criteria.Filter, index int) (Predicate, error) {
	r, ok := operatorTable[f.Operator]
	if !ok {
		return Predicate{}, apperror.NewUnsupportedOperator(string(f.Operator)).
			WithDetail("field", f.Field).
			WithDetail("index", index)
	}
	if err := f.Validate(); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			return Predicate{}, appErr.WithDetail("index", index)
		}
		return Predicate{}, err
	}

	param := ParamName(f.Field, index)
	return Predicate{
		Clause: r.clause(ResolveField(alias, f.Field), param),
		Param:  param,
		Value:  r.transform(f.Value),
	}, nil
}

// ResolveField qualifies a bare name with alias; dotted paths are used verbatim.
func ResolveField(alias, field string) string {
	if strings.Contains(field, ".") || alias == "" {
		return field
	}
	return alias + "." + field
}

// ParamName derives "<sanitized-field>_<index>". Every character outside
// [A-Za-z0-9_] becomes an underscore, so "a.b.c" yields "a_b_c_<index>".
func ParamName(field string, index int) string {
	var sb strings.Builder
	sb.Grow(len(field) + 4)

	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			sb.WriteByte(c)
		default:
			sb.WriteByte('_')
		}
	}

	name := sb.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "p" + name
	}
	return name + "_" + strconv.Itoa(index)
}
