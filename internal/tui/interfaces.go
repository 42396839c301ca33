package tui

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/models"
)

// sessionManager is the part of [service.SessionManager] the screens use.
type sessionManager interface {
	Session() *models.Session
	Login(ctx context.Context, identity models.Identity, partition string) models.Session
	ViewPartition() string
	SetViewPartition(partition string) bool
}
