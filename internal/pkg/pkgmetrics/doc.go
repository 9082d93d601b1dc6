// Package pkgmetrics exposes Prometheus instrumentation for the HTTP server.
package pkgmetrics
