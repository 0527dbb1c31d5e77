// Package aggregate reduces event columns to ordered frequency tables.
//
// Results are ranked by count, highest first. Equal counts keep the order
// in which their category was first encountered, so the same input always
// yields the same sequence.
package aggregate

import (
	"slices"
	"strings"

	"jepdash/internal/models"
)

// Count is one row of a frequency table.
type Count struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// IsUnknown reports whether value is the unresolved-category sentinel.
// Every aggregate that hides unresolved values goes through this check.
func IsUnknown(value string) bool {
	return value == models.Unknown
}

type options struct {
	topN           int
	excludeUnknown bool
	missingLabel   string
}

// Option configures a frequency computation.
type Option func(*options)

// TopN keeps the n highest-ranked categories. n <= 0 keeps everything.
func TopN(n int) Option {
	return func(o *options) {
		o.topN = n
	}
}

// ExcludeUnknown drops the Unknown sentinel before ranking.
func ExcludeUnknown() Option {
	return func(o *options) {
		o.excludeUnknown = true
	}
}

// IncludeMissing counts missing values under label instead of skipping
// them.
func IncludeMissing(label string) Option {
	return func(o *options) {
		o.missingLabel = label
	}
}

// ValueCounts counts each distinct value. Missing values are skipped
// unless IncludeMissing is given.
func ValueCounts(values []string, opts ...Option) []Count {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int)

	var counts []Count

	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			if o.missingLabel == "" {
				continue
			}

			v = o.missingLabel
		}

		if o.excludeUnknown && IsUnknown(v) {
			continue
		}

		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}

		index[v] = len(counts)
		counts = append(counts, Count{Category: v, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b Count) int {
		return b.Count - a.Count
	})

	if o.topN > 0 && o.topN < len(counts) {
		counts = counts[:o.topN]
	}

	return counts
}

// Exploded splits every value on delim, flattens the pieces and counts
// them. Repeats inside one value are counted separately.
func Exploded(values []string, delim string, opts ...Option) []Count {
	var flat []string

	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}

		for piece := range strings.SplitSeq(v, delim) {
			if piece = strings.TrimSpace(piece); piece != "" {
				flat = append(flat, piece)
			}
		}
	}

	return ValueCounts(flat, opts...)
}

// SortByCategory returns a copy of counts ordered by category label.
// HHhMM labels sort chronologically.
func SortByCategory(counts []Count) []Count {
	sorted := slices.Clone(counts)
	slices.SortStableFunc(sorted, func(a, b Count) int {
		return strings.Compare(a.Category, b.Category)
	})

	return sorted
}

// Total returns the sum of all counts.
func Total(counts []Count) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	return total
}
