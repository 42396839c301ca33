package service

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=SnapshotServiceWrapper

// AuthService plays the identity provider of the reference cloud server.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// IssueTokens answers the token endpoint for both the password and the
	// refresh_token grant. The refresh token is rotated on every call.
	IssueTokens(ctx context.Context, req models.TokenRequest) (models.TokenResponse, error)

	// ParseAccessToken verifies a bearer token. Refresh tokens are rejected.
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)

	IsClientAllowed(ctx context.Context, clientID string) bool
}

// SnapshotService stores one whole-snapshot blob per account.
type SnapshotService interface {
	GetSnapshot(ctx context.Context, owner string) (models.CloudBlob, error)
	PutSnapshot(ctx context.Context, owner string, blob models.CloudBlob) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// SnapshotServiceWrapper defines middleware composition for SnapshotService.
// Implementations wrap an existing SnapshotService to add behavior such as
// validation.
type SnapshotServiceWrapper interface {
	Wrap(SnapshotService) SnapshotService
}
