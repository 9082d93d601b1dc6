package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkguid"
)

//nolint:gochecknoglobals // built-in configuration
var defaults = map[string]any{
	"server.address.http":            "127.0.0.1:8080",
	"server.cors.allowed_origins":    "*",
	"log.level":                      "info",
	"modules.records.enabled":        true,
	"records.file":                   "",
	"records.on_startup_parse_error": "abort",
	"events.buffer":                  64,
	"events.workers":                 1,
	"goroutine.max":                  100,
}

//nolint:gochecknoglobals // config key to flag name
var flagBindings = map[string]string{
	"records.file":                   "file",
	"records.on_startup_parse_error": "on-startup-parse-error",
	"server.address.http":            "address",
}

func (a *App) initConfig() error {
	var path string
	if a.flags != nil {
		if f := a.flags.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	cfg, err := pkgconfig.NewViper(path,
		pkgconfig.WithDefaults(defaults),
		pkgconfig.WithEnvPrefix("CSVJSON"),
		pkgconfig.WithFlags(a.flags, flagBindings),
	)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	a.config = cfg
	return nil
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (a *App) initHTTPServer() {
	httpMetrics := pkgmetrics.NewHTTP(a.registry)

	a.router = pkgrouter.NewRouter(a.uuid, httpMetrics.Middleware(pkgrouter.RoutePattern))
	a.router.Handle(http.MethodGet, "/metrics", pkgmetrics.Handler(a.registry))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})
}
