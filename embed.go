package flatpost

import "embed"

// EmbeddedAssets contains static assets shipped with the preview server:
// preview.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
