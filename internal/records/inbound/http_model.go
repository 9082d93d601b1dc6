package inbound

import "github.com/shandysiswandi/csvjson/internal/records/entity"

type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RecordsResponse is written as a plain JSON array.
type RecordsResponse []Record

func toRecordsResponse(records []entity.Record) RecordsResponse {
	out := make(RecordsResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, Record(rec))
	}
	return out
}
