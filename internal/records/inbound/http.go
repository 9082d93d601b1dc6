package inbound

import (
	"context"
	"io"

	"github.com/shandysiswandi/csvjson/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

type uc interface {
	Data(ctx context.Context) []entity.Record
	Upload(ctx context.Context, r io.Reader) ([]entity.Record, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/data", end.Data)
	r.POSTUpload("/upload", end.Upload)
}
