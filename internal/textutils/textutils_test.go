package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"groceries", "groceries"},
		{"lunch with the team", "lunch team"},
		{"on my new shoes", "new shoes"},
		{"a 2 for 1 deal", "deal"},
		{"the 12.50", DefaultDescription},
		{"", DefaultDescription},
		{"  Coffee  AND Bagel ", "coffee bagel"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Groceries", Capitalize("groceries"))
	assert.Equal(t, "Today's", Capitalize(" today's "))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
	assert.Equal(t, "", Capitalize("   "))
}

func TestNormalizeTranscript(t *testing.T) {
	assert.Equal(t, "spent 25 on groceries", NormalizeTranscript("  Spent 25 on Groceries \n"))
}
