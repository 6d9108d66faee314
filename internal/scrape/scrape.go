package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aievents/internal/event"
	"aievents/internal/extract"
	"aievents/internal/filter"
	"aievents/internal/logger"
	"aievents/internal/metrics"
	"aievents/internal/render"
)

// Service runs the scrape pipeline: render the listing page, extract event
// records, filter them to the configured topic. The service holds no state
// between runs; every Run is independent.
type Service struct {
	renderer   render.Renderer
	strategies []extract.CardStrategy
	keywords   *filter.KeywordSet
	url        string
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// New creates a scrape service for the given target URL. metrics may be
// nil (no instrumentation); log may be nil (package default logger).
func New(renderer render.Renderer, keywords *filter.KeywordSet, url string, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		renderer:   renderer,
		strategies: extract.DefaultStrategies,
		keywords:   keywords,
		url:        url,
		log:        log,
		metrics:    m,
	}
}

// Run executes one full pipeline pass and returns the filtered records.
// Render and parse failures are hard errors; a page with no recognizable
// cards is not an error and yields an empty list.
func (s *Service) Run(ctx context.Context) ([]event.Record, error) {
	start := time.Now()

	result, err := s.renderer.Render(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("rendering events page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered markup: %w", err)
	}

	records, strategy := extract.EventsWithStrategies(doc, s.strategies)
	if strategy == "" {
		s.logWarn("no event cards found in rendered page", logger.Fields{"url": s.url})
	}

	matched := s.keywords.Apply(records)

	s.logInfo("scrape finished", logger.Fields{
		"url":            s.url,
		"strategy":       strategy,
		"cards":          len(records),
		"matched":        len(matched),
		"loadmore_state": string(result.LoadMore.Reason),
		"clicks":         result.LoadMore.Clicks,
		"elapsed":        time.Since(start).String(),
	})

	if s.metrics != nil {
		s.metrics.ObserveScrape(time.Since(start), len(records), len(matched), result.LoadMore.Clicks)
	}

	return matched, nil
}

func (s *Service) logInfo(msg string, fields logger.Fields) {
	if s.log != nil {
		s.log.Info(msg, fields)
		return
	}
	logger.Info(msg, fields)
}

func (s *Service) logWarn(msg string, fields logger.Fields) {
	if s.log != nil {
		s.log.Warn(msg, fields)
		return
	}
	logger.Warn(msg, fields)
}
