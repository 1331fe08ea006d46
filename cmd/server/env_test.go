package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("QK_STR", "value")
	t.Setenv("QK_INT", "42")
	t.Setenv("QK_BAD_INT", "forty-two")
	t.Setenv("QK_DUR", "5s")

	assert.Equal(t, "value", getEnv("QK_STR", "default"))
	assert.Equal(t, "default", getEnv("QK_MISSING", "default"))
	assert.Equal(t, 42, getEnvInt("QK_INT", 1))
	assert.Equal(t, 1, getEnvInt("QK_BAD_INT", 1))
	assert.Equal(t, 5*time.Second, getEnvDuration("QK_DUR", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("QK_MISSING", time.Second))
}

func TestSetupMetadataRegistry(t *testing.T) {
	reg := setupMetadataRegistry()

	def, ok := reg.Get("example")
	assert.True(t, ok)

	_, ok = def.Field("category.name")
	assert.True(t, ok, "joined category fields are addressable")
	_, ok = def.Field("category_name")
	assert.False(t, ok, "projected columns are not filterable")
}
