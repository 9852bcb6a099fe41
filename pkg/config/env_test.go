package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("ATOM_TEST_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("ATOM_TEST_STRING", "fallback"))

	t.Setenv("ATOM_TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("ATOM_TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{name: "unset", envValue: "", expected: 25},
		{name: "valid value", envValue: "50", expected: 50},
		{name: "negative value", envValue: "-10", expected: -10},
		{name: "surrounding spaces", envValue: " 7 ", expected: 7},
		{name: "non-numeric", envValue: "invalid", expected: 25},
		{name: "trailing garbage", envValue: "10abc", expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ATOM_TEST_INT", tt.envValue)
			assert.Equal(t, tt.expected, GetEnvInt("ATOM_TEST_INT", 25))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("ATOM_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvFloat("ATOM_TEST_FLOAT", 1))

	t.Setenv("ATOM_TEST_FLOAT", "fast")
	assert.Equal(t, 1.0, GetEnvFloat("ATOM_TEST_FLOAT", 1))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		envValue string
		expected bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			t.Setenv("ATOM_TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.expected, GetEnvBool("ATOM_TEST_BOOL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("ATOM_TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("ATOM_TEST_DURATION", time.Second))

	t.Setenv("ATOM_TEST_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("ATOM_TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"default"}

	t.Setenv("ATOM_TEST_LIST", "go, databases ,, rss")
	assert.Equal(t, []string{"go", "databases", "rss"}, GetEnvStringList("ATOM_TEST_LIST", def))

	t.Setenv("ATOM_TEST_LIST", " , ,")
	assert.Equal(t, def, GetEnvStringList("ATOM_TEST_LIST", def))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.NoError(t, ValidateIntRange(1, 1, 10))
	assert.NoError(t, ValidateIntRange(10, 1, 10))
	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))
}
