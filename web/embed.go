// Package web carries the embedded dashboard assets. The same files are
// served by the HTTP server and inlined by the HTML exporter.
package web

import "embed"

//go:embed static
var Assets embed.FS
