// Package filter retains the subset of scraped event records relevant to a
// fixed topic.
//
// Keywords are matched with regex word-boundary semantics, case-insensitive,
// against a record's title and description. Keywords that are substrings of
// other keywords ("AI" vs "Azure AI") match independently; no tokenization
// or deduplication between overlapping keywords is attempted.
package filter
