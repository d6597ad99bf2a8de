package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "English"},
		{"   ", "English"},
		{"ko", "Korean"},
		{"KO", "Korean"},
		{"en-US", "English"},
		{"pt_BR", "Portuguese"},
		{"Korean", "Korean"},
		{" Vietnamese ", "Vietnamese"},
		{"xx", "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, LanguageName(tt.input))
		})
	}
}
