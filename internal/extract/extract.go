package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aievents/internal/event"
)

// Selectors for the card sub-elements on the Microsoft events page.
const (
	titleSelector       = "h3.c-heading-6"
	dateSelector        = "p.title-date"
	descriptionSelector = "p.gridcard-description-min"
	regButtonSelector   = `button[id*="EventRegistrationButton"]`
)

// windowOpenPattern pulls the first URL argument out of a click handler
// like onclick="window.open('https://example.com/evt','_blank')".
var windowOpenPattern = regexp.MustCompile(`window\.open\('([^']+)'`)

// CardStrategy locates candidate event cards in a parsed document.
// Strategies are tried in order; the first one yielding any cards wins.
type CardStrategy struct {
	Name   string
	Select func(doc *goquery.Document) *goquery.Selection
}

// DefaultStrategies is the ordered selector strategy list: the exact class
// combination observed on the live page first, then a broad heuristic for
// any div whose class mentions "card" or "event".
var DefaultStrategies = []CardStrategy{
	{
		Name: "grid-card",
		Select: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find("div.c-card.bgcolor-white.grideventscroll")
		},
	},
	{
		Name: "class-heuristic",
		Select: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find("div[class]").FilterFunction(func(i int, s *goquery.Selection) bool {
				class, _ := s.Attr("class")
				class = strings.ToLower(class)
				return strings.Contains(class, "card") || strings.Contains(class, "event")
			})
		},
	},
}

// Events extracts event records from a parsed document using the default
// strategy list. It is a pure function of the document: no network access,
// no shared state.
func Events(doc *goquery.Document) []event.Record {
	records, _ := EventsWithStrategies(doc, DefaultStrategies)
	return records
}

// EventsWithStrategies extracts event records using the given ordered
// strategy list and reports the name of the strategy that produced cards
// ("" when no strategy matched anything). Records appear in document order.
func EventsWithStrategies(doc *goquery.Document, strategies []CardStrategy) ([]event.Record, string) {
	var cards *goquery.Selection
	var matched string

	for _, strategy := range strategies {
		sel := strategy.Select(doc)
		if sel.Length() > 0 {
			cards = sel
			matched = strategy.Name
			break
		}
	}

	if cards == nil {
		return []event.Record{}, ""
	}

	records := make([]event.Record, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		records = append(records, extractCard(card))
	})

	return records, matched
}

// extractCard pulls the four record fields out of one card. Each field is
// extracted independently and defaults on its own: a card missing every
// sub-element still yields a record.
func extractCard(card *goquery.Selection) event.Record {
	title := textOf(card, titleSelector)
	date := textOf(card, dateSelector)
	description := textOf(card, descriptionSelector)
	link := extractLink(card)

	return event.NewRecord(title, date, description, link)
}

// textOf returns the trimmed text of the first element matching the
// selector, or "" when there is no match.
func textOf(card *goquery.Selection, selector string) string {
	sel := card.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// extractLink locates the registration button and pulls the target URL out
// of its click handler. Any missing step yields "" (which the record
// constructor turns into the N/A sentinel).
func extractLink(card *goquery.Selection) string {
	button := card.Find(regButtonSelector).First()
	if button.Length() == 0 {
		return ""
	}

	onclick, ok := button.Attr("onclick")
	if !ok {
		return ""
	}

	matches := windowOpenPattern.FindStringSubmatch(onclick)
	if matches == nil {
		return ""
	}

	return matches[1]
}
