package converter

import (
	"fmt"

	"querykit/internal/domain/criteria"
)

// rule turns a resolved field and a parameter name into a clause,
// and an operand into the value bound to that parameter.
type rule struct {
	clause    func(field, param string) string
	transform func(v criteria.Value) any
}

func identity(v criteria.Value) any {
	return v.Scalar()
}

func passList(v criteria.Value) any {
	return v.Items()
}

// wildcard wraps the operand as %value% for LIKE matching.
func wildcard(v criteria.Value) any {
	return fmt.Sprintf("%%%v%%", v.Scalar())
}

func compare(op string) func(field, param string) string {
	return func(field, param string) string {
		return field + " " + op + " :" + param
	}
}

// operatorTable is never mutated after init.
var operatorTable = map[criteria.Operator]rule{
	criteria.Equals:         {clause: compare("="), transform: identity},
	criteria.NotEqual:       {clause: compare("!="), transform: identity},
	criteria.Greater:        {clause: compare(">"), transform: identity},
	criteria.Less:           {clause: compare("<"), transform: identity},
	criteria.GreaterOrEqual: {clause: compare(">="), transform: identity},
	criteria.LessOrEqual:    {clause: compare("<="), transform: identity},
	criteria.Contains: {
		clause: func(field, param string) string {
			return "lower(" + field + ") like lower(:" + param + ")"
		},
		transform: wildcard,
	},
	criteria.NotContains: {
		clause: func(field, param string) string {
			return "lower(" + field + ") not like lower(:" + param + ")"
		},
		transform: wildcard,
	},
	criteria.In: {
		clause: func(field, param string) string {
			return field + " in (:" + param + "...)"
		},
		transform: passList,
	},
	criteria.NotIn: {
		clause: func(field, param string) string {
			return field + " not in (:" + param + "...)"
		},
		transform: passList,
	},
}
