// Package cli implements the aievents-server command line interface.
package cli
