// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed static/*
var static embed.FS

// TemplatesFS returns the page templates
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(templates, "templates")
}

// StaticFS returns the assets served under /assets/
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
