package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

// Observer turns dataset activity into metrics and log lines. It handles
// ReplacedEvent from the consumer and upload outcomes from the usecase.
type Observer struct {
	mu     sync.Mutex
	latest int64

	stored       prometheus.Gauge
	replacements *prometheus.CounterVec
	uploads      *prometheus.CounterVec
}

func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: pkgmetrics.Namespace,
			Name:      "records_stored",
			Help:      "Records in the current dataset",
		}),
		replacements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: pkgmetrics.Namespace,
			Name:      "records_replacements_total",
			Help:      "Dataset replacements by source",
		}, []string{"source"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: pkgmetrics.Namespace,
			Name:      "uploads_total",
			Help:      "CSV uploads by result",
		}, []string{"result"}),
	}

	reg.MustRegister(o.stored, o.replacements, o.uploads)
	return o
}

func (o *Observer) Handle(ctx context.Context, event entity.ReplacedEvent) error {
	// events can arrive out of order; the gauge follows the newest replace
	o.mu.Lock()
	if event.ReplacedAt >= o.latest {
		o.latest = event.ReplacedAt
		o.stored.Set(float64(event.Count))
	}
	o.mu.Unlock()

	o.replacements.WithLabelValues(string(event.Source)).Inc()

	slog.InfoContext(ctx, "dataset replaced",
		"event_id", event.EventID,
		"source", event.Source,
		"records", event.Count,
		"replaced_at", event.ReplacedAt,
	)

	return nil
}

func (o *Observer) UploadFinished(result string) {
	o.uploads.WithLabelValues(result).Inc()
}
