package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/csvjson/internal/pkg/pkglog"
)

// Generator produces correlation IDs for requests that arrive without one.
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is read from requests and always echoed on responses.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted when HeaderCorrelationID is absent.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

//nolint:gochecknoglobals // lookup order
var correlationHeaders = []string{HeaderCorrelationID, HeaderRequestID}

// normalizeCID returns "" for values that cannot be echoed back in a header.
func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, func(r rune) bool { return r < 0x20 || r > 0x7e }) != -1 {
		return ""
	}
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}

func incomingCID(h http.Header) string {
	for _, name := range correlationHeaders {
		if cid := normalizeCID(h.Get(name)); cid != "" {
			return cid
		}
	}
	return ""
}

func middlewareCorrelationID(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}
			if cid == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(pkglog.WithCorrelationID(r.Context(), cid)))
		})
	}
}
