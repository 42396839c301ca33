// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive dashboard runtime.
//
// It starts the sync engine, hands the services to the terminal UI and
// releases the local store once the UI exits.
package client
