package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/internal/tui"
)

var errMissingDependency = errors.New("client app dependency is missing")

type App struct {
	services *service.ClientServices
	ui       UI
	storages io.Closer
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, storages io.Closer, log *logger.Logger) (*App, error) {
	if services == nil || services.Engine == nil || ui == nil || storages == nil {
		return nil, errMissingDependency
	}
	return &App{services: services, ui: ui, storages: storages, logger: log}, nil
}

// Run starts the engine, blocks in the UI and closes the local store on the
// way out. Quitting from the UI is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.services.Engine.Start(ctx)
	a.logger.Info().Str("func", "App.Run").Msg("sync engine started")

	runErr := a.ui.Run(ctx, a.services)
	cancel()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("closing local store failed")
	}

	if runErr != nil && !errors.Is(runErr, tui.ErrUserQuit) {
		return fmt.Errorf("ui: %w", runErr)
	}
	a.logger.Info().Str("func", "App.Run").Msg("client stopped")
	return nil
}
