package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"querykit/internal/core/entity"
)

type mockEntity struct {
	entity.Base
	Name    string `db:"name" json:"name"`
	Ignored string `db:"-"`
	NoTag   string
}

func TestExtractDBColumns_FlattensEmbedded(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name"}, cols)
}

func TestExtractDBColumns_PointerAndCacheIsolation(t *testing.T) {
	cols := ExtractDBColumns[*mockEntity]()
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name"}, cols)

	cols[0] = "mutated"
	assert.Equal(t, "id", ExtractDBColumns[mockEntity]()[0])
}

func TestExtractDBColumns_NonStruct(t *testing.T) {
	assert.Empty(t, ExtractDBColumns[int]())
}
