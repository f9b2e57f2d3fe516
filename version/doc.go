// Package version reports build information for the CLI and the /info
// endpoint.
package version
