package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkglog"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/csvjson/internal/pkg/pkguid"
	"github.com/spf13/pflag"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	flags  *pflag.FlagSet
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager
	registry  *prometheus.Registry

	// server
	router     *pkgrouter.Router
	httpServer *http.Server
	addr       string

	// released in reverse order by Stop
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// New builds the application from command-line flags, the optional config
// file they name, CSVJSON_* environment variables and built-in defaults.
// A startup dataset that cannot be loaded is returned as an error.
func New(flags *pflag.FlagSet) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		flags:  flags,
	}

	if err := app.initConfig(); err != nil {
		cancel()
		return nil, err
	}

	pkglog.InitLogging(app.config.GetString("log.level"))

	app.initLibraries()
	app.initHTTPServer()
	app.initClosers()

	if err := app.initModules(); err != nil {
		cancel()
		_ = app.config.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}
