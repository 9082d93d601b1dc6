package app

import (
	"fmt"

	"github.com/shandysiswandi/csvjson/internal/records"
)

func (a *App) initModules() error {
	if a.config.GetBool("modules.records.enabled") {
		closer, err := records.New(records.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			Registry:  a.registry,
		})
		if err != nil {
			return fmt.Errorf("init module records: %w", err)
		}
		if closer != nil {
			a.addCloser("Records", closer)
		}
	}

	return nil
}
