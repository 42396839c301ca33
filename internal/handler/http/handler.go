package http

import (
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/service"
)

const (
	// authBodyLimit bounds registration and token request bodies.
	authBodyLimit = 64 << 10

	// snapshotBodyLimit bounds an uploaded snapshot blob.
	snapshotBodyLimit = 16 << 20
)

type Handler struct {
	services *service.Services
	metrics  *metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  newMetrics(),
		logger:   logger,
	}
}
