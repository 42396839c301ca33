package service

import (
	"fmt"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/models"
)

type Services struct {
	AuthService     AuthService
	SnapshotService SnapshotService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg, logger),
		SnapshotService: NewSnapshotValidationService().Wrap(NewSnapshotService(storages.SnapshotStorage, logger)),
		AppInfoService:  appInfo,
	}, nil
}
