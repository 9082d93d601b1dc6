package inbound

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/shandysiswandi/csvjson/internal/pkg/pkgerror"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Data(ctx context.Context, r *http.Request) (any, error) {
	return toRecordsResponse(h.uc.Data(ctx)), nil
}

// Upload drains the whole payload before parsing, so a client that goes
// away mid-request never reaches the store.
func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	payload, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	records, err := h.uc.Upload(ctx, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	return toRecordsResponse(records), nil
}

func readPayload(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, pkgerror.NewInvalidFormat(errors.New("empty request body"))
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
		return readMultipart(r)
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	return payload, nil
}

// readMultipart concatenates every part in arrival order, whatever its
// field name.
func readMultipart(r *http.Request) ([]byte, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	var buf bytes.Buffer
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, pkgerror.NewServer(err)
		}

		_, err = io.Copy(&buf, part)
		_ = part.Close()
		if err != nil {
			return nil, pkgerror.NewServer(err)
		}
	}
}
