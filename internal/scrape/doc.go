// Package scrape orchestrates the render, extract, and filter stages into
// a single pipeline run per request. Control flow is strictly sequential
// and the service keeps no state across runs.
package scrape
