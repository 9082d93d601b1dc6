// Package pkglog contains logging helpers built around slog.
//
// Records are JSON with stable keys and carry the request correlation ID
// when one is present on the context.
package pkglog
