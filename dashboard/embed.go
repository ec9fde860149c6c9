// Package dashboard provides the embedded web UI assets for emojistatus.
//
// The dashboard HTML, CSS and JavaScript are compiled into the binary, so a
// board is a single file to deploy.
//
// The embedded assets are served by the server package at the root path ("/").
// The page subscribes to /api/sse and redraws a panel card for every state it
// receives.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Dashboard page with inline CSS and JavaScript
//
// The page contains a {{.Title}} placeholder that the server replaces with
// the HTML-escaped board title.
//
//go:embed assets/*
var Assets embed.FS
