package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/shandysiswandi/csvjson/internal/pkg/pkgerror"
)

type item struct {
	Name string `json:"name"`
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestChainOrder(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("mw1"), mw("mw2"))

	serve(t, h, http.MethodGet, "http://example.com")

	if !reflect.DeepEqual(order, []string{"mw1", "mw2", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestRouterWritesPayloadAsIs(t *testing.T) {
	router := NewRouter(&staticGenerator{value: "cid"})
	router.GET("/list", func(ctx context.Context, r *http.Request) (any, error) {
		return []item{}, nil
	})
	router.GET("/thing", func(ctx context.Context, r *http.Request) (any, error) {
		return item{Name: "x"}, nil
	})

	rec := serve(t, router, http.MethodGet, "/list")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	rec = serve(t, router, http.MethodGet, "/thing")
	if got := strings.TrimSpace(rec.Body.String()); got != `{"name":"x"}` {
		t.Fatalf("expected payload without envelope, got %q", got)
	}
}

func TestRouterMapsErrors(t *testing.T) {
	router := NewRouter(&staticGenerator{value: "cid"})
	router.POST("/csv", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, pkgerror.NewInvalidCSV(errors.New("record on line 2: wrong number of fields"))
	})
	router.POST("/boom", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, errors.New("raw failure")
	})

	rec := serve(t, router, http.MethodPost, "/csv")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "CSV Parse Error: record on line 2: wrong number of fields" {
		t.Fatalf("unexpected error body: %v", body)
	}

	rec = serve(t, router, http.MethodPost, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	router := NewRouter(&staticGenerator{value: "cid"})

	if rec := serve(t, router, http.MethodGet, "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(t, router, http.MethodDelete, "/health"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestExtraMiddlewareSeesRoutePattern(t *testing.T) {
	var seen []string
	record := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, RoutePattern(r))
			next.ServeHTTP(w, r)
		})
	}

	router := NewRouter(&staticGenerator{value: "cid"}, record)
	serve(t, router, http.MethodGet, "/health")

	if !reflect.DeepEqual(seen, []string{"/health"}) {
		t.Fatalf("unexpected route patterns: %#v", seen)
	}

	if got := RoutePattern(httptest.NewRequest(http.MethodGet, "/", nil)); got != "unmatched" {
		t.Fatalf("expected unmatched outside router, got %q", got)
	}
}

func TestRecovererAnswersWithJSON(t *testing.T) {
	router := NewRouter(&staticGenerator{value: "cid"})
	router.GET("/panic", func(ctx context.Context, r *http.Request) (any, error) {
		panic("boom")
	})

	rec := serve(t, router, http.MethodGet, "/panic")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
