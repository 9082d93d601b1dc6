package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLoggedBodyBytes = 16 * 1024

//nolint:gochecknoglobals // global for fast reuse
var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-api-key":     {},
	"password":      {},
	"access_token":  {},
	"email":         {},
}

func isSensitive(key string) bool {
	_, found := sensitiveKeys[strings.ToLower(key)]
	return found
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if isSensitive(key) {
			result.Set(key, "***")
		}
	}
	return result
}

func maskData(v any) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			if isSensitive(k) {
				masked[k] = "***"
			} else {
				masked[k] = maskData(v2)
			}
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, v2 := range val {
			res[i] = maskData(v2)
		}
		return res
	default:
		return v
	}
}

// isUpload reports bodies that are handed to the CSV parser untouched.
func isUpload(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "multipart/") || strings.HasPrefix(ct, "text/csv")
}

// describeBody renders a captured body for a log line with sensitive
// fields masked.
func describeBody(contentType string, body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}

	if !truncated {
		var jsonBody any
		if err := json.Unmarshal(body, &jsonBody); err == nil {
			return maskData(jsonBody)
		}

		if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
			if values, err := url.ParseQuery(string(body)); err == nil {
				masked := make(map[string]any, len(values))
				for k, v := range values {
					switch {
					case isSensitive(k):
						masked[k] = "***"
					case len(v) == 1:
						masked[k] = v[0]
					default:
						masked[k] = v
					}
				}
				return masked
			}
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if truncated {
		return string(body) + "...(truncated)"
	}
	return string(body)
}

// peekBody captures at most maxLoggedBodyBytes of r.Body and leaves the
// full body readable for the handler.
func peekBody(r *http.Request) ([]byte, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}

	//nolint:errcheck // best effort for logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
	r.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(head), r.Body),
		Closer: r.Body,
	}

	if len(head) > maxLoggedBodyBytes {
		return head[:maxLoggedBodyBytes], true
	}
	return head, false
}

type readCloser struct {
	io.Reader
	io.Closer
}

// responseRecorder tracks status and size. Only error bodies are kept;
// successful payloads are datasets and are summarized instead.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int
	errBody bytes.Buffer
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.status >= http.StatusBadRequest {
		if room := maxLoggedBodyBytes - w.errBody.Len(); room > 0 {
			w.errBody.Write(p[:min(len(p), room)])
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func responseLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := RoutePattern(r)
		start := time.Now()
		contentType := r.Header.Get("Content-Type")

		var reqBody any = "<upload body omitted>"
		if !bodyHidden(r) && !isUpload(contentType) {
			head, truncated := peekBody(r)
			reqBody = describeBody(contentType, head, truncated)
		}

		slog.InfoContext(
			r.Context(),
			"request received",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"content_type", contentType,
			"content_length", r.ContentLength,
			"headers", maskHeaders(r.Header),
			"body", reqBody,
		)

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		attrs := []any{
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if rec.errBody.Len() > 0 {
			attrs = append(attrs, "body", describeBody("application/json", rec.errBody.Bytes(), false))
		}

		slog.Log(r.Context(), responseLevel(status), "response sent", attrs...)
	})
}
