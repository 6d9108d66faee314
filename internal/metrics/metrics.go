// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A single instance is
// created at startup and shared by the server and the scrape pipeline.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	ScrapeDuration  prometheus.Summary
	EventsExtracted prometheus.Counter
	EventsMatched   prometheus.Counter
	LoadMoreClicks  prometheus.Counter
	LastSuccessTS   prometheus.Gauge
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aievents",
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code",
		}, []string{"path", "code"}),
		ScrapeDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "aievents",
			Name:      "scrape_duration_seconds",
			Help:      "Time spent on a full render-extract-filter pipeline run",
		}),
		EventsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aievents",
			Name:      "events_extracted_total",
			Help:      "Event cards extracted from rendered pages before filtering",
		}),
		EventsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aievents",
			Name:      "events_matched_total",
			Help:      "Events matching at least one configured keyword",
		}),
		LoadMoreClicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aievents",
			Name:      "loadmore_clicks_total",
			Help:      "Successful load-more interactions across renders",
		}),
		LastSuccessTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aievents",
			Name:      "last_scrape_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful pipeline run",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.ScrapeDuration,
		m.EventsExtracted,
		m.EventsMatched,
		m.LoadMoreClicks,
		m.LastSuccessTS,
	)

	return m
}

// ObserveScrape records a completed pipeline run.
func (m *Metrics) ObserveScrape(duration time.Duration, extracted, matched, clicks int) {
	m.ScrapeDuration.Observe(duration.Seconds())
	m.EventsExtracted.Add(float64(extracted))
	m.EventsMatched.Add(float64(matched))
	m.LoadMoreClicks.Add(float64(clicks))
	m.LastSuccessTS.SetToCurrentTime()
}
