package matching_test

import (
	"testing"

	"github.com/atticuslegal/practice_mgmt_app/internal/utils/matching"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "John Smith", "john smith"},
		{"trims", "  John Smith  ", "john smith"},
		{"collapses internal whitespace", "John \t  Smith", "john smith"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matching.Normalize(tt.input))
		})
	}
}

func TestNormalizeAll_DropsEmptyTerms(t *testing.T) {
	got := matching.NormalizeAll([]string{" John Smith ", "", "  ", "ACME Corp"})
	assert.Equal(t, []string{"john smith", "acme corp"}, got)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		record    string
		candidate string
		expected  bool
	}{
		{"exact", "john smith", "john smith", true},
		{"candidate inside record", "john smith jr", "john smith", true},
		{"record inside candidate", "smith", "anna smith", true},
		{"no overlap", "john smith", "jane doe", false},
		{"empty record", "", "john smith", false},
		{"empty candidate", "john smith", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matching.Matches(tt.record, tt.candidate))
		})
	}
}

func TestMatchAny(t *testing.T) {
	candidate, ok := matching.MatchAny("acme corporation", []string{"jane doe", "acme corp"})
	assert.True(t, ok)
	assert.Equal(t, "acme corp", candidate)

	_, ok = matching.MatchAny("acme corporation", []string{"jane doe"})
	assert.False(t, ok)
}
