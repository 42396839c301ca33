package store

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// UserRepository stores cloud accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// SnapshotBlobStorage stores one snapshot blob per owner. Put replaces the
// whole blob; there is no version check.
type SnapshotBlobStorage interface {
	GetSnapshot(ctx context.Context, owner string) (models.StoredSnapshot, error)
	PutSnapshot(ctx context.Context, snapshot models.StoredSnapshot) error
}
