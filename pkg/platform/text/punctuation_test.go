package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no punctuation",
			input:    "calm and steady",
			expected: "calm and steady",
		},
		{
			name:     "trailing period",
			input:    "A light yellow-green, conveying enthusiasm.",
			expected: "A light yellow-green, conveying enthusiasm",
		},
		{
			name:     "leading separator and whitespace",
			input:    " - A warm orange glow",
			expected: "A warm orange glow",
		},
		{
			name:     "keeps interior punctuation",
			input:    "-- bright, bold, and half-serious!!",
			expected: "bright, bold, and half-serious",
		},
		{
			name:     "only punctuation",
			input:    " -:. ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripPunctuation(tt.input))
		})
	}
}
