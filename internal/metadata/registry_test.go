package metadata

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querykit/internal/core/apperror"
	"querykit/internal/core/id"
	"querykit/internal/domain/criteria"
)

type testBase struct {
	ID        id.ID     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type testProduct struct {
	testBase

	Name     string          `db:"name" json:"title"`
	Price    decimal.Decimal `db:"price"`
	Stock    int             `db:"stock"`
	Active   bool            `db:"active"`
	OwnerID  *id.ID          `db:"owner_id"`
	Computed *string         `db:"computed" search:"-"`
	Ignored  string
	internal string `db:"internal"`
}

type testOwner struct {
	ID   id.ID  `db:"id"`
	Name string `db:"name"`
}

func productDef() EntityDef {
	return Inspect(testProduct{}, "product", "products").
		WithRelation("owner", Inspect(&testOwner{}, "", "owners"))
}

func TestInspect_Fields(t *testing.T) {
	def := Inspect(testProduct{}, "product", "products")

	names := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "created_at", "name", "price", "stock", "active", "owner_id"}, names)
	assert.Equal(t, "products", def.TableName)

	tests := []struct {
		field    string
		typ      FieldType
		sortable bool
	}{
		{"id", TypeReference, true},
		{"created_at", TypeDate, true},
		{"name", TypeString, true},
		{"price", TypeMoney, true},
		{"stock", TypeInteger, true},
		{"active", TypeBoolean, false},
		{"owner_id", TypeReference, true},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := def.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.typ, f.Type)
			assert.Equal(t, tt.sortable, f.Sortable)
		})
	}

	name, _ := def.Field("name")
	assert.Equal(t, "title", name.JSONName)
	assert.Equal(t, criteria.Operators(), name.Operators)
}

func TestInspect_DefaultName(t *testing.T) {
	def := Inspect(&testOwner{}, "", "owners")
	assert.Equal(t, "testOwner", def.Name)
}

func TestEntityDef_RelationFields(t *testing.T) {
	def := productDef()

	f, ok := def.Field("owner.name")
	require.True(t, ok)
	assert.Equal(t, TypeString, f.Type)

	_, ok = def.Field("owner.missing")
	assert.False(t, ok)
	_, ok = def.Field("nobody.name")
	assert.False(t, ok)
}

func TestEntityDef_WithRelationDoesNotMutate(t *testing.T) {
	base := Inspect(testProduct{}, "product", "products")
	_ = base.WithRelation("owner", Inspect(testOwner{}, "owner", "owners"))
	assert.Empty(t, base.Relations)
}

func TestEntityDef_ValidateCriteria(t *testing.T) {
	def := productDef()

	tests := []struct {
		name string
		c    criteria.Criteria
		code string
	}{
		{
			name: "valid",
			c: criteria.New(
				criteria.MustFilter("name", criteria.Contains, "top"),
				criteria.MustFilter("price", criteria.Greater, 10),
				criteria.MustFilter("owner.name", criteria.In, []string{"a", "b"}),
			).WithOrder(criteria.Order{OrderBy: "owner.name", Direction: criteria.Asc}),
		},
		{
			name: "unknown field",
			c:    criteria.New(criteria.MustFilter("password", criteria.Equals, "x")),
			code: apperror.CodeInvalidFilterField,
		},
		{
			name: "hidden field",
			c:    criteria.New(criteria.MustFilter("computed", criteria.Equals, "x")),
			code: apperror.CodeInvalidFilterField,
		},
		{
			name: "injection attempt",
			c:    criteria.New(criteria.MustFilter("name; drop table products", criteria.Equals, "x")),
			code: apperror.CodeInvalidFilterField,
		},
		{
			name: "contains on money",
			c:    criteria.New(criteria.MustFilter("price", criteria.Contains, "1")),
			code: apperror.CodeUnsupportedOperator,
		},
		{
			name: "greater on boolean",
			c:    criteria.New(criteria.MustFilter("active", criteria.Greater, true)),
			code: apperror.CodeUnsupportedOperator,
		},
		{
			name: "order by unknown",
			c:    criteria.New().WithOrder(criteria.Order{OrderBy: "nope", Direction: criteria.Asc}),
			code: apperror.CodeInvalidFilterField,
		},
		{
			name: "order by unsortable",
			c:    criteria.New().WithOrder(criteria.Order{OrderBy: "active", Direction: criteria.Desc}),
			code: apperror.CodeInvalidFilterField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := def.ValidateCriteria(tt.c)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Inspect(testProduct{}, "product", "products"))
	reg.Register(Inspect(testOwner{}, "owner", "owners"))

	_, ok := reg.Get("product")
	assert.True(t, ok)
	_, ok = reg.Get("missing")
	assert.False(t, ok)

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "owner", list[0].Name)
	assert.Equal(t, "product", list[1].Name)
}
