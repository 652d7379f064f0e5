// backend/src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy *bluemonday.Policy

func init() {
	strictHTMLPolicy = bluemonday.StrictPolicy() // Removes all HTML tags
}

// SanitizeText strips HTML tags and non-printable characters from free-text
// input (notes, card names, bonus descriptions) before it reaches storage,
// then neutralizes formula prefixes. Spreadsheet cells and request bodies are
// both untrusted, and stored values may be exported back into a spreadsheet.
func SanitizeText(s string) string {
	cleaned := strings.TrimSpace(stripUnprintable(strictHTMLPolicy.Sanitize(s)))
	return SanitizeForFormulaInjection(cleaned)
}

func stripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// SanitizeForFormulaInjection prepends a single quote if the string starts
// with a character that triggers formula execution in Excel/Sheets, forcing
// the cell to be treated as text when the value is exported back out.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return s
	}

	switch rune(trimmed[0]) {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
