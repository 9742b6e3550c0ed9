package web

import "embed"

// StaticFS holds the embedded static assets (CSS, form-enhancement JS).
//
//go:embed static/*
var StaticFS embed.FS
