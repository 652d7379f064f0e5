// backend/src/security/validation/sanitizers_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "Chase Sapphire Preferred", "Chase Sapphire Preferred"},
		{"html stripped", "<b>bold</b> note", "bold note"},
		{"script removed with content", "<script>alert(1)</script>Amex", "Amex"},
		{"surrounding whitespace trimmed", "  hello  ", "hello"},
		{"empty stays empty", "", ""},
		{"equals prefix neutralized", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus prefix neutralized", "+1234", "'+1234"},
		{"minus prefix neutralized", "-cmd", "'-cmd"},
		{"at prefix neutralized", "@import", "'@import"},
		{"formula char mid-string untouched", "points=60000", "points=60000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeForFormulaInjection_LeadingWhitespace(t *testing.T) {
	// The trigger character counts even behind leading spaces.
	assert.Equal(t, "' =1+1", SanitizeForFormulaInjection(" =1+1"))
	assert.Equal(t, "safe", SanitizeForFormulaInjection("safe"))
}
