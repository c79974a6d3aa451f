// Package rope provides embedded assets for production builds.
package rope

import "embed"

// In dev mode assets are read from disk so edits show up without a rebuild.

// StaticFS holds stylesheets, scripts and images served under /static/.
//
//go:embed all:frontend/static
var StaticFS embed.FS

// TemplateFS holds the page templates.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
