// Package tsbrowse keeps build information about the application.
package tsbrowse

var (
	// Version of tsbrowse, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
