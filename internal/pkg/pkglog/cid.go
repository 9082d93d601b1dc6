package pkglog

import "context"

type correlationIDKey struct{}

// CorrelationID returns the request correlation ID carried by ctx. Work that
// did not start from a request (startup, background consumers) has none.
func CorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	if !ok || cid == "" {
		return "", false
	}
	return cid, true
}

// WithCorrelationID returns a copy of ctx that carries cid.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
