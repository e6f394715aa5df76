// Package ui holds the embedded templates and static assets served by the
// web application.
package ui

import "embed"

//go:embed "html" "static"
var Files embed.FS
