// Package parsers extracts structured values from the free-text fields of the event dataset.
//
// Every extraction is total: a value that is not text, or text with no
// match, yields the empty string. Nothing in this package returns an error.
package parsers

import "regexp"

// Parser holds the compiled patterns used for field extraction.
type Parser struct {
	timePattern *regexp.Regexp
	dayPattern  *regexp.Regexp
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{
		// 09h30
		timePattern: regexp.MustCompile(`\d{2}h\d{2}`),
		// 16 septembre
		dayPattern: regexp.MustCompile(`\d{2} septembre`),
	}
}

// text returns v as a string when it is textual.
func text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}

		return *s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}
