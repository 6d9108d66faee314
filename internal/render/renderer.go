package render

import "context"

// LoadMoreReason explains why the load-more loop stopped.
type LoadMoreReason string

const (
	// ReasonBudgetExhausted means every configured attempt was used.
	ReasonBudgetExhausted LoadMoreReason = "budget-exhausted"
	// ReasonButtonMissing means the button was absent on some round.
	// This is the normal terminal condition once all content is loaded.
	ReasonButtonMissing LoadMoreReason = "button-missing"
	// ReasonErrored means a round failed and the loop aborted early.
	// The render itself still proceeds.
	ReasonErrored LoadMoreReason = "errored"
	// ReasonSkipped means the renderer does not drive a browser and never
	// attempted the interaction.
	ReasonSkipped LoadMoreReason = "skipped"
)

// LoadMoreOutcome reports how content expansion went: how many clicks
// landed and why the loop terminated. Err is set only for ReasonErrored.
type LoadMoreOutcome struct {
	Clicks int
	Reason LoadMoreReason
	Err    error
}

// Result is a completed render of the target page.
type Result struct {
	HTML     string
	LoadMore LoadMoreOutcome
}

// Renderer produces the fully rendered markup of a page. Implementations
// must release all acquired resources on every exit path and must not
// retain state between calls.
type Renderer interface {
	Render(ctx context.Context, url string) (*Result, error)
}
