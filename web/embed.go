// Package web embeds the HTML templates and static assets so the server
// binary runs from any working directory.
package web

import "embed"

// FS holds templates/ (base layout, pages, forms, error pages) and static/.
//
//go:embed templates static
var FS embed.FS
