// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-dash-sync/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI draws the dashboard until the user leaves. [tui.TUI] satisfies it.
type UI interface {
	Run(ctx context.Context, services *service.ClientServices) error
}
