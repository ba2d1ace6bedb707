package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	assert.Equal(t, "fallback", GetEnv("CONFIG_TEST_UNSET", "fallback"))

	t.Setenv("CONFIG_TEST_STR", "value")
	assert.Equal(t, "value", GetEnv("CONFIG_TEST_STR", "fallback"))

	// An empty value counts as unset.
	t.Setenv("CONFIG_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("CONFIG_TEST_EMPTY", "fallback"))
}

func TestGetIntEnv(t *testing.T) {
	assert.Equal(t, 42, GetIntEnv("CONFIG_TEST_UNSET", 42))

	t.Setenv("CONFIG_TEST_INT", "7")
	assert.Equal(t, 7, GetIntEnv("CONFIG_TEST_INT", 42))

	t.Setenv("CONFIG_TEST_INT", "not-a-number")
	assert.Equal(t, 42, GetIntEnv("CONFIG_TEST_INT", 42))
}

func TestGetBoolEnv(t *testing.T) {
	assert.True(t, GetBoolEnv("CONFIG_TEST_UNSET", true))
	assert.False(t, GetBoolEnv("CONFIG_TEST_UNSET", false))

	t.Setenv("CONFIG_TEST_BOOL", "false")
	assert.False(t, GetBoolEnv("CONFIG_TEST_BOOL", true))

	t.Setenv("CONFIG_TEST_BOOL", "1")
	assert.True(t, GetBoolEnv("CONFIG_TEST_BOOL", false))

	t.Setenv("CONFIG_TEST_BOOL", "maybe")
	assert.True(t, GetBoolEnv("CONFIG_TEST_BOOL", true))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "development")
	assert.False(t, IsProduction())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())
}
