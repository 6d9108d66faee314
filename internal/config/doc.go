// Package config loads service configuration with a layered hierarchy:
// environment variables (AIEVENTS_*, plus bare API_KEY for the shared
// secret), an optional YAML config file, and built-in defaults.
//
// The shared secret is required: Load fails and the process refuses to
// start when no API key is configured. The resulting Config value is
// injected into the components that need it; nothing reads configuration
// from package-level state.
package config
