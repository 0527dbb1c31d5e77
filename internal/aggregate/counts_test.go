package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jepdash/internal/models"
)

func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func TestValueCounts_Ranking(t *testing.T) {
	values := []string{"Lyon", "Paris", "Lyon", "Nantes", "Paris", "Lyon"}

	got := ValueCounts(values)

	assert.Equal(t, []Count{
		{"Lyon", 3},
		{"Paris", 2},
		{"Nantes", 1},
	}, got)
}

func TestValueCounts_TieBreakIsFirstEncounter(t *testing.T) {
	// A:5, B:5, C:3 with B seen before A in the second run.
	var ab, ba []string

	for range 5 {
		ab = append(ab, "A", "B")
		ba = append(ba, "B", "A")
	}

	ab = append(ab, repeat("C", 3)...)
	ba = append(repeat("C", 3), ba...)

	for range 20 {
		assert.Equal(t, []Count{{"A", 5}, {"B", 5}}, ValueCounts(ab, TopN(2)))
	}

	// C is encountered first but has fewer occurrences.
	assert.Equal(t, []Count{{"B", 5}, {"A", 5}}, ValueCounts(ba, TopN(2)))
}

func TestValueCounts_TopN(t *testing.T) {
	values := []string{"a", "b", "b", "c"}

	tests := []struct {
		name string
		n    int
		want []Count
	}{
		{"Top 1", 1, []Count{{"b", 2}}},
		{"Exactly distinct", 3, []Count{{"b", 2}, {"a", 1}, {"c", 1}}},
		{"N exceeds distinct", 10, []Count{{"b", 2}, {"a", 1}, {"c", 1}}},
		{"Zero keeps all", 0, []Count{{"b", 2}, {"a", 1}, {"c", 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueCounts(values, TopN(tt.n)))
		})
	}
}

func TestValueCounts_ExcludeUnknown(t *testing.T) {
	values := append(repeat(models.Unknown, 10), "Paris", "Lyon", "Paris")

	got := ValueCounts(values, ExcludeUnknown(), TopN(2))

	assert.Equal(t, []Count{{"Paris", 2}, {"Lyon", 1}}, got)

	for _, c := range got {
		assert.False(t, IsUnknown(c.Category))
	}

	// Without exclusion the sentinel leads.
	assert.Equal(t, Count{models.Unknown, 10}, ValueCounts(values)[0])
}

func TestValueCounts_Missing(t *testing.T) {
	values := []string{"", "Paris", "  ", "Paris", ""}

	assert.Equal(t, []Count{{"Paris", 2}}, ValueCounts(values))
	assert.Equal(t, []Count{{"(missing)", 3}, {"Paris", 2}}, ValueCounts(values, IncludeMissing("(missing)")))
}

func TestValueCounts_Empty(t *testing.T) {
	assert.Empty(t, ValueCounts(nil))
	assert.Empty(t, ValueCounts([]string{"", ""}, TopN(3)))
}

func TestExploded(t *testing.T) {
	values := []string{"Art|Histoire|Art", "", "Histoire | Jardins", "Art|"}

	got := Exploded(values, "|")

	assert.Equal(t, []Count{
		{"Art", 3},
		{"Histoire", 2},
		{"Jardins", 1},
	}, got)
}

func TestExploded_NoDedupWithinRecord(t *testing.T) {
	got := Exploded([]string{"Art|Histoire|Art"}, "|")

	assert.Equal(t, []Count{{"Art", 2}, {"Histoire", 1}}, got)
}

func TestSortByCategory(t *testing.T) {
	ranked := []Count{{"18h00", 9}, {"09h00", 4}, {"10h00", 7}}

	got := SortByCategory(ranked)

	assert.Equal(t, []Count{{"09h00", 4}, {"10h00", 7}, {"18h00", 9}}, got)
	assert.Equal(t, "18h00", ranked[0].Category, "input must not be modified")
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0, Total(nil))
	assert.Equal(t, 6, Total([]Count{{"a", 1}, {"b", 5}}))
}
