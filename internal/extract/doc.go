// Package extract parses rendered listing-page markup into event records.
//
// Extraction is a pure function from a parsed goquery document to a slice
// of records. Card discovery runs an ordered list of selector strategies:
// the primary structural selector for the page's grid cards, then a broad
// class-substring heuristic used only when the primary selector finds
// nothing. Field extraction is defensive throughout; a missing sub-element
// defaults that one field and never drops the card.
package extract
