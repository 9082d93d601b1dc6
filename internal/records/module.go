package records

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkguid"
	"github.com/shandysiswandi/csvjson/internal/records/event"
	"github.com/shandysiswandi/csvjson/internal/records/inbound"
	"github.com/shandysiswandi/csvjson/internal/records/store"
	"github.com/shandysiswandi/csvjson/internal/records/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	Registry  prometheus.Registerer
}

// New wires the records module and loads the startup dataset. The returned
// closer drains pending replace events.
func New(dep Dependency) (func(context.Context) error, error) {
	policy, err := usecase.ParseStartupPolicy(dep.Config.GetString("records.on_startup_parse_error"))
	if err != nil {
		return nil, err
	}

	ids, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, fmt.Errorf("init snowflake: %w", err)
	}

	registry := dep.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	storage := store.NewInMemoryStore()
	bus := event.NewBus(int(dep.Config.GetInt("events.buffer")))
	observer := event.NewObserver(registry)
	registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: pkgmetrics.Namespace,
		Name:      "events_pending",
		Help:      "Replacement events queued for the observer",
	}, func() float64 { return float64(bus.Pending()) }))
	consumer := event.NewConsumer(bus, observer, event.ConsumerConfig{
		Workers: int(dep.Config.GetInt("events.workers")),
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:   storage,
		Events:  bus,
		Runner:  dep.Goroutine,
		ID:      ids,
		Uploads: observer,
		RootCtx: dep.Context,
	})

	if err := uc.Bootstrap(dep.Context, dep.Config.GetString("records.file"), policy); err != nil {
		_ = consumer.Stop(context.Background())
		return nil, fmt.Errorf("load %q: %w", dep.Config.GetString("records.file"), err)
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return consumer.Stop, nil
}
