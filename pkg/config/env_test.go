package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	assert.Equal(t, "fallback", GetEnvString("AGENCY_TEST_STRING", "fallback"))
	t.Setenv("AGENCY_TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("AGENCY_TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"valid", "42", 42},
		{"padded", " 12 ", 12},
		{"negative", "-3", -3},
		{"garbage", "4x", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AGENCY_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("AGENCY_TEST_INT", 7))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("AGENCY_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("AGENCY_TEST_BOOL", false))
	t.Setenv("AGENCY_TEST_BOOL", "nope")
	assert.True(t, GetEnvBool("AGENCY_TEST_BOOL", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("AGENCY_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("AGENCY_TEST_DURATION", time.Hour))
	t.Setenv("AGENCY_TEST_DURATION", "soon")
	assert.Equal(t, time.Hour, GetEnvDuration("AGENCY_TEST_DURATION", time.Hour))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"d"}
	t.Setenv("AGENCY_TEST_LIST", "a, b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("AGENCY_TEST_LIST", def))
	t.Setenv("AGENCY_TEST_LIST", " , ")
	assert.Equal(t, def, GetEnvStringList("AGENCY_TEST_LIST", def))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
