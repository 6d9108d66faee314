// Package server exposes the scrape pipeline behind a single
// authenticated endpoint.
//
// GET /ai-events requires the shared secret in X-API-Key and responds with
// {"ai_events": [...]} on success, 401 with a detail body on credential
// failures, and 500 with a detail body when the pipeline fails. GET
// /healthz and GET /metrics (Prometheus) round out the surface.
//
// The secret is injected at construction time; there is no package-level
// configuration state.
package server
