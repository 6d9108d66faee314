package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Static fetches the page with a plain HTTP GET. It performs no content
// expansion, so only the initially served markup is visible to the
// extractor. Useful for fixture-backed runs and hosts without Chrome.
type Static struct {
	client *resty.Client
}

// NewStatic creates a Static renderer with the given user agent and
// request timeout.
func NewStatic(userAgent string, timeout time.Duration) *Static {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &Static{client: client}
}

// Render fetches the URL and returns its body as the rendered markup.
// The load-more outcome is always ReasonSkipped.
func (s *Static) Render(ctx context.Context, url string) (*Result, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode(), url)
	}

	return &Result{
		HTML:     string(resp.Body()),
		LoadMore: LoadMoreOutcome{Reason: ReasonSkipped},
	}, nil
}
