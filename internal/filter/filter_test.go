package filter

import (
	"reflect"
	"testing"

	"aievents/internal/event"
)

func TestMatchesWordBoundaries(t *testing.T) {
	ks := NewKeywordSet(DefaultKeywords)

	tests := []struct {
		name     string
		record   event.Record
		expected bool
	}{
		{
			name:     "keyword in title",
			record:   event.Record{Title: "Azure AI Summit", Description: "Join us"},
			expected: true,
		},
		{
			name:     "keyword in description only",
			record:   event.Record{Title: "Spring developer day", Description: "Sessions on Machine Learning and more"},
			expected: true,
		},
		{
			name:     "AI does not match inside Maintenance",
			record:   event.Record{Title: "Quarterly Maintenance Window", Description: "Planned downtime"},
			expected: false,
		},
		{
			name:     "ML does not match inside HTML",
			record:   event.Record{Title: "HTML deep dive", Description: "Markup fundamentals"},
			expected: false,
		},
		{
			name:     "case-insensitive match",
			record:   event.Record{Title: "copilot for everyone", Description: ""},
			expected: true,
		},
		{
			name:     "multi-word phrase requires the exact phrase",
			record:   event.Record{Title: "Deep sea learning expedition", Description: "Marine biology"},
			expected: false,
		},
		{
			name:     "multi-word phrase matches with boundaries",
			record:   event.Record{Title: "Intro to deep learning", Description: ""},
			expected: true,
		},
		{
			name:     "no keywords anywhere",
			record:   event.Record{Title: "Gardening for beginners", Description: "Grow tomatoes"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ks.Matches(tt.record); got != tt.expected {
				t.Errorf("Matches(%q / %q) = %v, expected %v",
					tt.record.Title, tt.record.Description, got, tt.expected)
			}
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	ks := NewKeywordSet([]string{"AI"})

	records := []event.Record{
		{Title: "AI kickoff"},
		{Title: "Maintenance"},
		{Title: "Azure AI Summit"},
		{Title: "Coffee tasting"},
		{Title: "AI wrap-up"},
	}

	filtered := ks.Apply(records)

	expected := []string{"AI kickoff", "Azure AI Summit", "AI wrap-up"}
	if len(filtered) != len(expected) {
		t.Fatalf("expected %d records, got %d", len(expected), len(filtered))
	}
	for i, title := range expected {
		if filtered[i].Title != title {
			t.Errorf("expected record %d to be %q, got %q", i, title, filtered[i].Title)
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	ks := NewKeywordSet(DefaultKeywords)

	records := []event.Record{
		{Title: "Azure AI Summit", Description: "Join us"},
		{Title: "Quarterly Maintenance Window", Description: "Downtime"},
		{Title: "Copilot for Developers", Description: "Ship faster"},
	}

	once := ks.Apply(records)
	twice := ks.Apply(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: first %v, second %v", once, twice)
	}
}

func TestApplyEmptyInput(t *testing.T) {
	ks := NewKeywordSet(DefaultKeywords)

	filtered := ks.Apply(nil)
	if filtered == nil {
		t.Fatal("expected non-nil slice for nil input")
	}
	if len(filtered) != 0 {
		t.Errorf("expected 0 records, got %d", len(filtered))
	}
}

func TestOverlappingKeywords(t *testing.T) {
	// "AI" and "Azure AI" are both configured; the shorter one matching
	// inside the longer phrase is expected and preserved behavior.
	ks := NewKeywordSet([]string{"AI", "Azure AI"})

	rec := event.Record{Title: "Azure AI roadshow"}
	if !ks.Matches(rec) {
		t.Error("expected overlapping keywords to match")
	}

	onlyShort := event.Record{Title: "AI roundtable"}
	if !ks.Matches(onlyShort) {
		t.Error("expected short keyword to match on its own")
	}
}

func TestKeywordsReturnsCopy(t *testing.T) {
	ks := NewKeywordSet([]string{"AI", "ML"})

	got := ks.Keywords()
	got[0] = "mutated"

	if ks.Keywords()[0] != "AI" {
		t.Error("Keywords() must return a copy, not the backing slice")
	}
}
