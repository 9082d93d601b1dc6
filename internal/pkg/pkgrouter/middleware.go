package pkgrouter

import (
	"context"
	"net/http"
)

// Middleware wraps an http.Handler, typically to add cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order, returning the final wrapped handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type routeContextKey struct{}

type route struct {
	pattern  string
	hideBody bool
}

func withRoute(rt route) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routeContextKey{}, rt)))
		})
	}
}

// RoutePattern returns the registered pattern that matched r, or
// "unmatched" when r did not come through a registered route.
func RoutePattern(r *http.Request) string {
	if rt, ok := r.Context().Value(routeContextKey{}).(route); ok {
		return rt.pattern
	}
	return "unmatched"
}

// bodyHidden reports whether r's route was registered with POSTUpload.
func bodyHidden(r *http.Request) bool {
	rt, ok := r.Context().Value(routeContextKey{}).(route)
	return ok && rt.hideBody
}
