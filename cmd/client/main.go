package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/internal/client"
	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/internal/tui"
	"github.com/MKhiriev/go-dash-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("go-dash-client", "").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger("go-dash-client", cfg.Log.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	ui := tui.New(buildInfo, log)

	transport, err := adapter.NewHTTPCloudTransport(cfg.Adapter, storages.Local, ui, log.WithComponent("transport"))
	if err != nil {
		storages.Close()
		log.Fatal().Err(err).Msg("create cloud transport")
	}

	services := service.NewClientServices(storages, transport, ui, *cfg, log)

	app, err := client.NewApp(services, ui, storages, log)
	if err != nil {
		storages.Close()
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
