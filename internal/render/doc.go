// Package render turns a target URL into fully rendered page markup.
//
// The browser renderer drives a headless Chrome session: navigate, wait
// for network idle, click the "load more" control up to a fixed budget,
// then run a few scroll-to-bottom passes to trigger lazy loading, and
// finally capture the document. The static renderer is a plain HTTP GET
// for environments without a browser; it performs no content expansion.
//
// A Gate can bound concurrent browser sessions and rate-limit launches,
// and a RobotsChecker can veto navigation based on the target host's
// robots.txt.
package render
