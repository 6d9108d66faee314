package scrape

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"aievents/internal/filter"
	"aievents/internal/logger"
	"aievents/internal/render"
)

// fixtureRenderer serves canned markup instead of driving a browser.
type fixtureRenderer struct {
	html string
	err  error
}

func (r *fixtureRenderer) Render(ctx context.Context, url string) (*render.Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &render.Result{
		HTML:     r.html,
		LoadMore: render.LoadMoreOutcome{Reason: render.ReasonButtonMissing},
	}, nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}

func TestRunEndToEnd(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_events.html")
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}

	svc := New(
		&fixtureRenderer{html: string(data)},
		filter.NewKeywordSet(filter.DefaultKeywords),
		"https://test.example.com/events",
		quietLogger(),
		nil,
	)

	records, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Sample fixture has five cards; "Quarterly Maintenance Window" must be
	// excluded, everything else carries a keyword.
	if len(records) != 4 {
		t.Fatalf("expected 4 filtered records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Azure AI Summit" || first.Date != "May 5" ||
		first.Description != "Join us" || first.Link != "https://reg.example/1" {
		t.Errorf("unexpected first record: %+v", first)
	}

	for _, rec := range records {
		if rec.Title == "Quarterly Maintenance Window" {
			t.Error("maintenance event must be filtered out")
		}
	}
}

func TestRunSingleMatchingCard(t *testing.T) {
	html := `<html><body>
		<div class="c-card bgcolor-white grideventscroll">
			<h3 class="c-heading-6">Azure AI Summit</h3>
			<p class="title-date">May 5</p>
			<p class="gridcard-description-min">Join us</p>
			<button id="EventRegistrationButton-0" onclick="window.open('https://reg.example/1')">Register</button>
		</div>
	</body></html>`

	svc := New(
		&fixtureRenderer{html: html},
		filter.NewKeywordSet(filter.DefaultKeywords),
		"https://test.example.com/events",
		quietLogger(),
		nil,
	)

	records, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Title != "Azure AI Summit" {
		t.Errorf("expected title 'Azure AI Summit', got %q", rec.Title)
	}
	if rec.Date != "May 5" {
		t.Errorf("expected date 'May 5', got %q", rec.Date)
	}
	if rec.Description != "Join us" {
		t.Errorf("expected description 'Join us', got %q", rec.Description)
	}
	if rec.Link != "https://reg.example/1" {
		t.Errorf("expected link 'https://reg.example/1', got %q", rec.Link)
	}
}

func TestRunRenderFailure(t *testing.T) {
	svc := New(
		&fixtureRenderer{err: errors.New("navigation failed")},
		filter.NewKeywordSet(filter.DefaultKeywords),
		"https://test.example.com/events",
		quietLogger(),
		nil,
	)

	_, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected render failure to propagate")
	}
}

func TestRunEmptyPage(t *testing.T) {
	svc := New(
		&fixtureRenderer{html: "<html><body></body></html>"},
		filter.NewKeywordSet(filter.DefaultKeywords),
		"https://test.example.com/events",
		quietLogger(),
		nil,
	)

	records, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("an empty page must not be an error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}
