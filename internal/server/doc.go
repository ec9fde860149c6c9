// Package server provides the HTTP server for the emojistatus dashboard.
//
// This package is internal to emojistatus and handles all HTTP concerns:
//
//   - Dashboard serving: the embedded HTML page at "/"
//   - REST API: panel states as JSON at "/api/panels"
//   - Server-Sent Events: live panel states at "/api/sse"
//   - Metrics: Prometheus exposition at "/metrics"
//
// The server shuts down gracefully on context cancellation, with a
// 5-second timeout for in-flight requests.
package server
