package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgerror"
)

// Handler is the application-style handler used by this router.
//
// It returns a response payload, written as JSON with status 200, or an error.
type Handler func(ctx context.Context, r *http.Request) (any, error)

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the default application router with standard middleware.
// extra runs inside the standard stack, after logging.
func NewRouter(uuid Generator, extra ...Middleware) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Error: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Error: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	ro := &Router{
		hr: hr,
		mws: append([]Middleware{
			middlewareRecoverer,
			middlewareCorrelationID(uuid),
			middlewareLogging,
		}, extra...),
	}

	ro.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "hi from csvjson"}, http.StatusOK)
	}))

	ro.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "server is running well"}, http.StatusOK)
	}))

	return ro
}

// Use appends middleware to the stack of routes registered afterwards.
func (r *Router) Use(mws ...Middleware) {
	r.mws = append(r.mws, mws...)
}

func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(route{pattern: path}, http.MethodGet, h, mws...)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(route{pattern: path}, http.MethodPost, h, mws...)
}

// POSTUpload registers a POST route whose request body is user data. The
// body is never written to the request log, whatever its content type.
func (r *Router) POSTUpload(path string, h Handler, mws ...Middleware) {
	r.endpoint(route{pattern: path, hideBody: true}, http.MethodPost, h, mws...)
}

// Handle registers a raw http.Handler. It still runs behind the router's
// middleware stack.
func (r *Router) Handle(method, path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(method, path, r.chain(route{pattern: path}, h, mws))
}

func (r *Router) endpoint(rt route, method string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, rt.pattern, r.chain(rt, http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		ctx := re.Context()

		resp, err := h(ctx, re)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(w, resp, http.StatusOK)
	}), mws))
}

func (r *Router) chain(rt route, h http.Handler, mws []Middleware) http.Handler {
	stack := make([]Middleware, 0, len(r.mws)+len(mws)+1)
	stack = append(stack, withRoute(rt))
	stack = append(stack, r.mws...)
	stack = append(stack, mws...)
	return Chain(h, stack...)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError answers with {"error": msg}. Only classified errors expose
// their message; anything else is an opaque 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unclassified handler error", "error", err)
		writeJSON(w, errorResponse{Error: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	if gerr.Type() == pkgerror.TypeServer {
		slog.ErrorContext(ctx, "request failed", "error", gerr.String())
	}

	writeJSON(w, errorResponse{Error: gerr.Msg()}, gerr.StatusCode())
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
