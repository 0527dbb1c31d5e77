// Package utils provides common utility functions.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// TrimWhitespace removes leading and trailing whitespace.
func (s *StringHelper) TrimWhitespace(str string) string {
	return strings.TrimSpace(str)
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates str to maxWidth display columns, ending with "...".
// Wide runes count for two columns.
func (s *StringHelper) TruncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}

	return runewidth.Truncate(str, maxWidth, "...")
}
