package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestStringHelper_NormalizeWhitespace(t *testing.T) {
	s := NewStringHelper()

	if got := s.NormalizeWhitespace("  Titre  -   FR \t"); got != "Titre - FR" {
		t.Errorf("NormalizeWhitespace() = %q, want %q", got, "Titre - FR")
	}
}

func TestStringHelper_TruncateString(t *testing.T) {
	s := NewStringHelper()

	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"Short", "Paris", 10, "Paris"},
		{"Exact", "Lyon", 4, "Lyon"},
		{"Long", "Chateau de Chambord", 10, "Chateau..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.TruncateString(tt.in, tt.maxWidth); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestStringHelper_TruncateString_Wide(t *testing.T) {
	s := NewStringHelper()

	got := s.TruncateString("消防處增至八十三死", 8)
	if w := runewidth.StringWidth(got); w > 8 {
		t.Errorf("TruncateString width = %d, want <= 8 (%q)", w, got)
	}
}
