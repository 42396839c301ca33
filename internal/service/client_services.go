package service

import (
	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/store"
)

type ClientServices struct {
	Gate     AccessGate
	Sessions *SessionManager
	Engine   DashboardEngine
}

func NewClientServices(
	storages *store.ClientStorages,
	transport adapter.CloudTransport,
	confirmer Confirmer,
	cfg config.ClientConfig,
	log *logger.Logger,
	opts ...Option,
) *ClientServices {
	sessions := NewSessionManager(storages.Local, confirmer, log.WithComponent("sessions"))
	engine := NewSyncReconciler(
		storages.Local,
		transport,
		sessions,
		confirmer,
		cfg.Workers,
		cfg.Adapter.ClientID,
		log.WithComponent("sync"),
		opts...,
	)

	return &ClientServices{
		Sessions: sessions,
		Engine:   engine,
	}
}
