package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil becomes empty", nil, []string{}},
		{"trims whitespace", []string{"  Cardiology ", "Family Law"}, []string{"Cardiology", "Family Law"}},
		{"keeps first occurrence", []string{"ADHD", "Pediatrics", "ADHD"}, []string{"ADHD", "Pediatrics"}},
		{"drops blanks", []string{"", "  ", "Life coaching"}, []string{"Life coaching"}},
		{"case is significant", []string{"adhd", "ADHD"}, []string{"adhd", "ADHD"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimDoesNotAlias(t *testing.T) {
	in := []string{"Cardiology"}
	out := DedupeAndTrim(in)
	out[0] = "changed"
	assert.Equal(t, "Cardiology", in[0])
}
