// Package query provides the mutable query-building context that criteria are
// applied to. Predicates carry named parameters (":name" for scalars,
// "(:name...)" for lists) and are rendered into positional PostgreSQL
// placeholders by squirrel only when the statement is built.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"querykit/internal/core/apperror"
	"querykit/internal/domain/criteria"
)

// identifier matches a column optionally qualified by relation aliases.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Predicate is one conjunctive condition with its named bindings.
type Predicate struct {
	Clause string
	Params map[string]any
}

type join struct {
	left   bool
	clause string
	args   []any
}

type sortKey struct {
	field string
	dir   criteria.Direction
}

// SelectQuery accumulates predicates, a sort key and pagination for a single
// statement against one table. It is not safe for concurrent use; build a new
// one per query.
type SelectQuery struct {
	table   string
	alias   string
	columns []string
	joins   []join

	// repository-owned conditions, rendered before criteria predicates
	base []squirrel.Sqlizer

	predicates []Predicate
	params     map[string]any

	sort   *sortKey
	limit  uint64
	offset uint64
}

// New creates an empty context selecting columns from table under alias.
func New(table, alias string, columns ...string) *SelectQuery {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &SelectQuery{
		table:   table,
		alias:   alias,
		columns: cols,
		params:  make(map[string]any),
	}
}

// Alias returns the base alias used to qualify bare field names.
func (q *SelectQuery) Alias() string {
	return q.alias
}

// Table returns the primary table name.
func (q *SelectQuery) Table() string {
	return q.table
}

// Join adds an INNER JOIN, e.g. "cat_categories category ON category.id = example.category_id".
func (q *SelectQuery) Join(clause string, args ...any) *SelectQuery {
	q.joins = append(q.joins, join{clause: clause, args: args})
	return q
}

// LeftJoin adds a LEFT JOIN.
func (q *SelectQuery) LeftJoin(clause string, args ...any) *SelectQuery {
	q.joins = append(q.joins, join{left: true, clause: clause, args: args})
	return q
}

// Where adds a repository-owned condition that is not expressed as criteria.
func (q *SelectQuery) Where(pred squirrel.Sqlizer) *SelectQuery {
	q.base = append(q.base, pred)
	return q
}

// AndWhere adds a conjunctive predicate with its named parameters.
// A parameter name that is already bound is rejected and nothing is added.
func (q *SelectQuery) AndWhere(clause string, params map[string]any) error {
	for name := range params {
		if _, exists := q.params[name]; exists {
			return apperror.NewParameterConflict(name)
		}
	}

	bound := make(map[string]any, len(params))
	for name, v := range params {
		bound[name] = v
		q.params[name] = v
	}
	q.predicates = append(q.predicates, Predicate{Clause: clause, Params: bound})
	return nil
}

// HasParam reports whether name is already bound.
func (q *SelectQuery) HasParam(name string) bool {
	_, ok := q.params[name]
	return ok
}

// OrderBy replaces the sort directive.
func (q *SelectQuery) OrderBy(field string, dir criteria.Direction) {
	q.sort = &sortKey{field: field, dir: dir}
}

// Take caps the number of returned rows; zero removes the cap.
func (q *SelectQuery) Take(limit uint64) {
	q.limit = limit
}

// Skip skips leading rows; zero skips nothing.
func (q *SelectQuery) Skip(offset uint64) {
	q.offset = offset
}

// Predicates returns the criteria predicates in insertion order.
func (q *SelectQuery) Predicates() []Predicate {
	out := make([]Predicate, len(q.predicates))
	copy(out, q.predicates)
	return out
}

// Params returns a copy of all named bindings.
func (q *SelectQuery) Params() map[string]any {
	out := make(map[string]any, len(q.params))
	for k, v := range q.params {
		out[k] = v
	}
	return out
}

// NamedArgs returns the bindings keyed by parameter name, for logging or for
// executing a clause directly with pgx ("@name" placeholders).
func (q *SelectQuery) NamedArgs() pgx.NamedArgs {
	return pgx.NamedArgs(q.Params())
}

// Sort returns the sort directive, if any.
func (q *SelectQuery) Sort() (string, criteria.Direction, bool) {
	if q.sort == nil {
		return "", "", false
	}
	return q.sort.field, q.sort.dir, true
}

// Limit returns the row cap (zero means unbounded).
func (q *SelectQuery) Limit() uint64 {
	return q.limit
}

// Offset returns the number of skipped rows.
func (q *SelectQuery) Offset() uint64 {
	return q.offset
}

// ToSql renders the full SELECT with PostgreSQL placeholders.
func (q *SelectQuery) ToSql() (string, []any, error) {
	b, err := q.filtered(q.columns...)
	if err != nil {
		return "", nil, err
	}

	if q.sort != nil {
		if !identifier.MatchString(q.sort.field) {
			return "", nil, apperror.NewInvalidFilterField(q.sort.field)
		}
		b = b.OrderBy(q.sort.field + " " + string(q.sort.dir))
	}
	if q.limit > 0 {
		b = b.Limit(q.limit)
	}
	if q.offset > 0 {
		b = b.Offset(q.offset)
	}

	return b.ToSql()
}

// CountSql renders SELECT COUNT(*) with the same joins and predicates.
// Sort and pagination are never part of a count.
func (q *SelectQuery) CountSql() (string, []any, error) {
	b, err := q.filtered("COUNT(*)")
	if err != nil {
		return "", nil, err
	}
	return b.ToSql()
}

func (q *SelectQuery) filtered(columns ...string) (squirrel.SelectBuilder, error) {
	from := q.table
	if q.alias != "" && q.alias != q.table {
		from = q.table + " " + q.alias
	}

	b := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(columns...).
		From(from)

	for _, j := range q.joins {
		if j.left {
			b = b.LeftJoin(j.clause, j.args...)
		} else {
			b = b.Join(j.clause, j.args...)
		}
	}

	for _, pred := range q.base {
		b = b.Where(pred)
	}

	for _, p := range q.predicates {
		clause, args, err := bindNamed(p.Clause, p.Params)
		if err != nil {
			return b, err
		}
		b = b.Where(squirrel.Expr(clause, args...))
	}

	return b, nil
}

// bindNamed rewrites ":name" to "?" and "(:name...)" to "(?, ?, ...)",
// collecting arguments in order of appearance. "::" casts and quoted
// literals are left untouched.
func bindNamed(clause string, params map[string]any) (string, []any, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.Grow(len(clause))

	for i := 0; i < len(clause); {
		c := clause[i]

		switch {
		case c == '\'':
			end := strings.IndexByte(clause[i+1:], '\'')
			if end < 0 {
				sb.WriteString(clause[i:])
				i = len(clause)
				continue
			}
			sb.WriteString(clause[i : i+end+2])
			i += end + 2

		case c == ':' && i+1 < len(clause) && clause[i+1] == ':':
			sb.WriteString("::")
			i += 2

		case c == ':' && i+1 < len(clause) && isIdentStart(clause[i+1]):
			j := i + 1
			for j < len(clause) && isIdentPart(clause[j]) {
				j++
			}
			name := clause[i+1 : j]
			spread := strings.HasPrefix(clause[j:], "...")
			if spread {
				j += 3
			}

			v, ok := params[name]
			if !ok {
				return "", nil, fmt.Errorf("parameter %s is not bound", name)
			}

			if spread {
				items, ok := v.([]any)
				if !ok || len(items) == 0 {
					return "", nil, fmt.Errorf("parameter %s: non-empty list required", name)
				}
				sb.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", "))
				args = append(args, items...)
			} else {
				if _, isList := v.([]any); isList {
					return "", nil, fmt.Errorf("parameter %s: list bound to scalar slot", name)
				}
				sb.WriteByte('?')
				args = append(args, v)
			}
			i = j

		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), args, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
