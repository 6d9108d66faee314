package event

import "strings"

// Unavailable is the sentinel value used when a field could not be
// extracted from the source markup.
const Unavailable = "N/A"

// Record represents a single event scraped from the listing page.
// All fields are always populated: extraction defaults missing title/date
// fields to Unavailable, description to the empty string, and link to
// Unavailable. A Record is never mutated after creation.
type Record struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// NewRecord creates a Record, trimming whitespace and applying the field
// defaults for empty title, date, and link values.
func NewRecord(title, date, description, link string) Record {
	title = strings.TrimSpace(title)
	if title == "" {
		title = Unavailable
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = Unavailable
	}
	link = strings.TrimSpace(link)
	if link == "" {
		link = Unavailable
	}
	return Record{
		Title:       title,
		Date:        date,
		Description: strings.TrimSpace(description),
		Link:        link,
	}
}
