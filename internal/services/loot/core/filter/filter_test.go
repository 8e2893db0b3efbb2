package filter

import (
	"slices"
	"testing"
	"time"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/bag"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

var base = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

func sampleLog() []bag.LogEntry {
	return []bag.LogEntry{
		{Seq: 4, Timestamp: base.Add(3 * time.Minute), Draws: []string{"axenut", "lumber_2"}},
		{Seq: 3, Timestamp: base.Add(2 * time.Minute), Draws: []string{"gold_3"}},
		{Seq: 2, Timestamp: base.Add(time.Minute), Draws: []string{"random_item"}},
		{Seq: 1, Timestamp: base, Draws: []string{"gold_1", "hide_2", "gold_2"}},
	}
}

func seqs(entries []bag.LogEntry) []int {
	var out []int
	for _, e := range entries {
		out = append(out, e.Seq)
	}
	return out
}

func TestParseAndApply(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []int
	}{
		{name: "empty", filter: "", want: []int{4, 3, 2, 1}},
		{name: "blank", filter: "   ", want: []int{4, 3, 2, 1}},
		{name: "category", filter: `category = "money"`, want: []int{3, 1}},
		{name: "category not", filter: `category != "money"`, want: []int{4, 2}},
		{name: "token", filter: `token = "gold_3"`, want: []int{3}},
		{name: "label", filter: `label = "Random Item"`, want: []int{2}},
		{name: "seq range", filter: `seq >= 2 AND seq < 4`, want: []int{3, 2}},
		{name: "size", filter: `size > 1`, want: []int{4, 1}},
		{name: "or", filter: `token = "axenut" OR token = "random_item"`, want: []int{4, 2}},
		{name: "not", filter: `NOT category = "money"`, want: []int{4, 2}},
		{name: "timestamp", filter: `ts > timestamp("2025-01-02T10:01:30Z")`, want: []int{4, 3}},
		{name: "timestamp equal", filter: `ts = timestamp("2025-01-02T10:00:00Z")`, want: []int{1}},
		{name: "combined", filter: `category = "money" AND size = 1`, want: []int{3}},
		{name: "no match", filter: `token = "snowthistle"`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Parse(tt.filter)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.filter, err)
			}
			got := seqs(Apply(catalog.Default(), sampleLog(), pred))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Apply(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestParseRejectsInvalidExpressions(t *testing.T) {
	tests := []string{
		`category = `,
		`unknown = "x"`,
		`seq = "one"`,
		`ts > timestamp("yesterday")`,
	}
	for _, filter := range tests {
		t.Run(filter, func(t *testing.T) {
			_, err := Parse(filter)
			if err == nil {
				t.Fatalf("expected error for %q", filter)
			}
			if !apperrors.IsCode(err, apperrors.CodeFilterInvalid) {
				t.Fatalf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodeFilterInvalid)
			}
			if apperrors.GetMetadata(err)["Reason"] == "" {
				t.Fatal("expected reason metadata")
			}
		})
	}
}

func TestSubjectForResolvesOwners(t *testing.T) {
	s := SubjectFor(catalog.Default(), bag.LogEntry{Seq: 7, Timestamp: base, Draws: []string{"gold_1", "gold_2", "axenut", "mystery"}})
	if s.Seq != 7 || s.Size != 4 {
		t.Fatalf("subject = %+v", s)
	}
	if !slices.Equal(s.Categories, []string{"money", "axenut"}) {
		t.Fatalf("categories = %v", s.Categories)
	}
	if !slices.Equal(s.Labels, []string{"Money", "Axenut"}) {
		t.Fatalf("labels = %v", s.Labels)
	}
	if len(s.Tokens) != 4 {
		t.Fatalf("tokens = %v", s.Tokens)
	}
}

func TestApplyNilPredicateKeepsAll(t *testing.T) {
	if got := Apply(catalog.Default(), sampleLog(), nil); len(got) != 4 {
		t.Fatalf("got %d entries", len(got))
	}
}
