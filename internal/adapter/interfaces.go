// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the cloud transport used by the dashboard client.
//
// The primary abstraction is [CloudTransport], which decouples the sync
// engine from the identity provider and the blob storage behind it. The
// package ships an HTTP/REST implementation ([NewHTTPCloudTransport]) talking
// to the reference cloud server.
//
// Transport failures are mapped to the sentinel values defined in errors.go so
// that callers can use [errors.Is] (e.g. [ErrSessionExpired] when the stored
// grant is missing or rejected, [ErrTransport] for everything the network or
// the server refused).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cloud_transport_mock.go -package=mock

// CloudTransport authenticates against the cloud and moves whole snapshots in
// and out of it.
type CloudTransport interface {
	// Init confirms the client id with the cloud. A successful Init is
	// remembered, later calls return nil without a round trip. A failure may be
	// retried. Failures wrap [ErrSDKInit].
	Init(ctx context.Context, clientID string) error

	// Authenticate obtains an access token. [models.AuthModeNone] exchanges the
	// stored refresh grant and never prompts; a missing or rejected grant
	// returns [ErrSessionExpired]. [models.AuthModeConsent] asks the
	// [Consenter] for credentials; a decline or a rejection returns
	// [ErrAuthFailed]. On success the rotated grant is stored.
	Authenticate(ctx context.Context, mode models.AuthMode) error

	// LoadFromCloud fetches the remote snapshot. It returns nil, nil when the
	// cloud holds no snapshot yet.
	LoadFromCloud(ctx context.Context) (*models.CloudBlob, error)

	// SaveToCloud replaces the remote snapshot with blob. It returns nil only
	// when the write was confirmed by the cloud.
	SaveToCloud(ctx context.Context, blob models.CloudBlob) error

	// SignOut forgets the access token and the stored grant.
	SignOut(ctx context.Context) error
}

// Consenter collects credentials from the user during interactive
// authentication. ok is false when the user declined.
type Consenter interface {
	Consent(ctx context.Context) (creds models.Credentials, ok bool)
}

// GrantStore persists the refresh grant used for silent authentication.
// [store.LocalStore] satisfies it.
type GrantStore interface {
	LoadGrant(ctx context.Context) (string, bool)
	SaveGrant(ctx context.Context, grant string)
	ClearGrant(ctx context.Context)
}
