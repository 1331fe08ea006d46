// Package metadata describes searchable entities: their fields, the fields of
// joined relations and the operators each field accepts.
package metadata

import (
	"sort"
	"strings"

	"querykit/internal/core/apperror"
	"querykit/internal/domain/criteria"
)

// FieldType defines the data type of a field.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeInteger   FieldType = "integer"
	TypeNumber    FieldType = "number"
	TypeMoney     FieldType = "money"
	TypeBoolean   FieldType = "boolean"
	TypeDate      FieldType = "date"
	TypeReference FieldType = "reference"
)

// EntityDef describes a searchable entity.
type EntityDef struct {
	Name      string        `json:"name"`
	Label     string        `json:"label,omitempty"`
	TableName string        `json:"-"`
	Fields    []FieldDef    `json:"fields"`
	Relations []RelationDef `json:"relations,omitempty"`
}

// RelationDef is a relation joined into the entity's queries under Name.
type RelationDef struct {
	Name   string     `json:"name"`
	Entity string     `json:"entity"`
	Fields []FieldDef `json:"fields"`
}

// FieldDef describes a field addressable by filters and orders.
type FieldDef struct {
	// Name is the column name used in criteria ("price").
	Name      string              `json:"name"`
	JSONName  string              `json:"jsonName"`
	Type      FieldType           `json:"type"`
	Operators []criteria.Operator `json:"operators"`
	Sortable  bool                `json:"sortable"`
}

// WithRelation returns a copy of d that exposes rel's fields as "<name>.<field>".
func (d EntityDef) WithRelation(name string, rel EntityDef) EntityDef {
	out := d
	out.Relations = append(append([]RelationDef(nil), d.Relations...), RelationDef{
		Name:   name,
		Entity: rel.Name,
		Fields: rel.Fields,
	})
	return out
}

// Field looks up "field" or "relation.field".
func (d EntityDef) Field(path string) (FieldDef, bool) {
	rel, name, qualified := strings.Cut(path, ".")
	if !qualified {
		return findField(d.Fields, path)
	}
	for _, r := range d.Relations {
		if r.Name == rel {
			return findField(r.Fields, name)
		}
	}
	return FieldDef{}, false
}

// ValidateCriteria rejects fields the entity does not expose and operators a
// field does not accept. The converter itself never checks field names.
func (d EntityDef) ValidateCriteria(c criteria.Criteria) error {
	for i, f := range c.Filters {
		def, ok := d.Field(f.Field)
		if !ok {
			return apperror.NewInvalidFilterField(f.Field).
				WithDetail("entity", d.Name).
				WithDetail("index", i)
		}
		if !def.Accepts(f.Operator) {
			return apperror.NewUnsupportedOperator(string(f.Operator)).
				WithDetail("field", f.Field).
				WithDetail("type", string(def.Type)).
				WithDetail("index", i)
		}
	}

	if c.Order != nil {
		def, ok := d.Field(c.Order.OrderBy)
		if !ok || !def.Sortable {
			return apperror.NewInvalidFilterField(c.Order.OrderBy).
				WithDetail("entity", d.Name).
				WithDetail("orderBy", c.Order.OrderBy)
		}
	}

	return nil
}

// Accepts reports whether op may be used on the field.
func (f FieldDef) Accepts(op criteria.Operator) bool {
	for _, allowed := range f.Operators {
		if allowed == op {
			return true
		}
	}
	return false
}

func findField(fields []FieldDef, name string) (FieldDef, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Registry stores entity definitions. Register everything at startup;
// lookups afterwards are read-only.
type Registry struct {
	entities map[string]EntityDef
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]EntityDef),
	}
}

func (r *Registry) Register(def EntityDef) {
	r.entities[def.Name] = def
}

func (r *Registry) Get(name string) (EntityDef, bool) {
	d, ok := r.entities[name]
	return d, ok
}

// List returns all definitions sorted by name.
func (r *Registry) List() []EntityDef {
	list := make([]EntityDef, 0, len(r.entities))
	for _, def := range r.entities {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
