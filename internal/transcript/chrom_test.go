package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeChrom(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"chr12", "12"},
		{"12", "12"},
		{"chrX", "X"},
		{"MT", "MT"},
		{"chrM", "M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeChrom(tt.input), "normalizeChrom(%q)", tt.input)
	}
}

func TestChromSortKey(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"1", 1},
		{"22", 22},
		{"X", 23},
		{"Y", 24},
		{"MT", 25},
		{"M", 25},
		{"GL000009.2", chromOther},
		{"0", chromOther},
		{"23", chromOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, chromSortKey(tt.input), "chromSortKey(%q)", tt.input)
	}
}

func TestDisplayChrom(t *testing.T) {
	assert.Equal(t, "chr12", displayChrom("12"))
	assert.Equal(t, "chrX", displayChrom("X"))
	assert.Equal(t, "chrM", displayChrom("MT"))
	assert.Equal(t, "chrM", displayChrom("M"))
}
