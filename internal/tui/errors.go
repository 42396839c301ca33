// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-dash-sync/internal/adapter"
	"github.com/MKhiriev/go-dash-sync/internal/service"
)

// humanizeConnectError turns a ConnectCloud failure into a short message for
// the error overlay.
func humanizeConnectError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrAuthFailed):
		return "Cloud sign-in failed or was cancelled"
	case errors.Is(err, adapter.ErrSessionExpired):
		return "Cloud session expired, connect again"
	case errors.Is(err, service.ErrSyncInProgress):
		return "A sync is already running"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the cloud is unavailable"
	}

	return err.Error()
}
