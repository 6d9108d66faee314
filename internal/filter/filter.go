package filter

import (
	"regexp"

	"aievents/internal/event"
)

// DefaultKeywords is the fixed list used to identify AI-related events.
// Single words and multi-word phrases are both matched as whole-word,
// case-insensitive substrings.
var DefaultKeywords = []string{
	"AI", "Artificial Intelligence", "Machine Learning", "ML",
	"Deep Learning", "Cognitive Services", "Azure AI", "Copilot",
	"Generative AI", "Neural Networks", "Data Science", "Intelligent Apps",
}

// KeywordSet holds an ordered set of keywords compiled into word-boundary
// patterns. A KeywordSet is immutable after construction and safe for
// concurrent use.
type KeywordSet struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewKeywordSet compiles the given keywords into case-insensitive
// word-boundary patterns. Multi-word keywords require the exact phrase
// with boundaries on both ends, so "AI" does not match inside
// "Maintenance" but does match inside "Azure AI Summit".
func NewKeywordSet(keywords []string) *KeywordSet {
	ks := &KeywordSet{
		keywords: make([]string, len(keywords)),
		patterns: make([]*regexp.Regexp, 0, len(keywords)),
	}
	copy(ks.keywords, keywords)

	for _, kw := range keywords {
		ks.patterns = append(ks.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}

	return ks
}

// Keywords returns a copy of the configured keywords in order.
func (ks *KeywordSet) Keywords() []string {
	out := make([]string, len(ks.keywords))
	copy(out, ks.keywords)
	return out
}

// Matches reports whether any keyword appears as a whole-word match in the
// record's title or description.
func (ks *KeywordSet) Matches(rec event.Record) bool {
	for _, p := range ks.patterns {
		if p.MatchString(rec.Title) || p.MatchString(rec.Description) {
			return true
		}
	}
	return false
}

// Apply returns the subsequence of records matching at least one keyword,
// preserving input order. There is no ranking or scoring, only binary
// include/exclude, so applying the same set twice returns an equal list.
func (ks *KeywordSet) Apply(records []event.Record) []event.Record {
	filtered := make([]event.Record, 0, len(records))
	for _, rec := range records {
		if ks.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
