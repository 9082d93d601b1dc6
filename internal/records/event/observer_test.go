package event

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

func TestObserverTracksNewestReplace(t *testing.T) {
	obs := NewObserver(prometheus.NewRegistry())
	ctx := context.Background()

	events := []entity.ReplacedEvent{
		{EventID: "1", Source: entity.ReplaceSourceStartup, Count: 2, ReplacedAt: 100},
		{EventID: "3", Source: entity.ReplaceSourceUpload, Count: 5, ReplacedAt: 300},
		{EventID: "2", Source: entity.ReplaceSourceUpload, Count: 9, ReplacedAt: 200},
	}
	for _, ev := range events {
		if err := obs.Handle(ctx, ev); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	if got := testutil.ToFloat64(obs.stored); got != 5 {
		t.Fatalf("records_stored = %v, want 5", got)
	}
	if got := testutil.ToFloat64(obs.replacements.WithLabelValues("upload")); got != 2 {
		t.Fatalf("upload replacements = %v, want 2", got)
	}
	if got := testutil.ToFloat64(obs.replacements.WithLabelValues("startup")); got != 1 {
		t.Fatalf("startup replacements = %v, want 1", got)
	}
}

func TestObserverCountsUploads(t *testing.T) {
	obs := NewObserver(prometheus.NewRegistry())

	obs.UploadFinished("ok")
	obs.UploadFinished("invalid")
	obs.UploadFinished("invalid")

	if got := testutil.ToFloat64(obs.uploads.WithLabelValues("invalid")); got != 2 {
		t.Fatalf("invalid uploads = %v, want 2", got)
	}
}
