// Package event defines the event record model served by the AI events API.
//
// Records are plain value types with a fixed JSON shape. There is no
// identity or deduplication: the same event scraped twice produces two
// equal records, and the caller receives whatever the source page listed
// at render time.
package event
