// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/models"
)

// errorKind classifies a transport error for the sync state.
func errorKind(err error) models.ErrorKind {
	switch {
	case err == nil:
		return models.ErrorKindNone
	case errors.Is(err, adapter.ErrSessionExpired):
		return models.ErrorKindSessionExpired
	case errors.Is(err, adapter.ErrAuthFailed):
		return models.ErrorKindAuthFailed
	case errors.Is(err, adapter.ErrSDKInit):
		return models.ErrorKindSDKInitFailure
	default:
		return models.ErrorKindTransportFailure
	}
}

// transferFailure is the error kind recorded when a pull or a push fails. An
// expired cloud session is kept apart, every other failure is a transport one.
func transferFailure(err error) models.ErrorKind {
	if errorKind(err) == models.ErrorKindSessionExpired {
		return models.ErrorKindSessionExpired
	}
	return models.ErrorKindTransportFailure
}
