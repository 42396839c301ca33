// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ErrorKind classifies the last synchronization failure.
type ErrorKind string

const (
	ErrorKindNone             ErrorKind = ""
	ErrorKindSDKInitFailure   ErrorKind = "SdkInitFailure"
	ErrorKindSessionExpired   ErrorKind = "SessionExpired"
	ErrorKindAuthFailed       ErrorKind = "AuthFailed"
	ErrorKindTransportFailure ErrorKind = "TransportFailure"
)

// SuspendsSync reports whether the error means the cloud session itself is
// unusable, as opposed to a single failed transfer.
func (k ErrorKind) SuspendsSync() bool {
	return k == ErrorKindSessionExpired || k == ErrorKindAuthFailed
}

// Message is the banner text shown to the user.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindSessionExpired:
		return "cloud session expired"
	case ErrorKindAuthFailed:
		return "cloud authentication failed"
	case ErrorKindTransportFailure:
		return "cloud sync interrupted"
	case ErrorKindSDKInitFailure:
		return "cloud client unavailable"
	}
	return ""
}

// Phase is the coarse lifecycle stage of the sync engine.
type Phase string

const (
	PhaseIdle              Phase = "Idle"
	PhaseInitializing      Phase = "Initializing"
	PhaseSilentAuthAttempt Phase = "SilentAuthAttempt"
	PhaseConnected         Phase = "Connected"
	PhaseDisconnected      Phase = "Disconnected"
)

// SyncState is the observable status of the sync engine.
type SyncState struct {
	Connected     bool
	Syncing       bool
	LastCloudSync *time.Time
	LastLocalSave time.Time
	Error         ErrorKind
	// ErrorDismissed is set when the user hid the banner for Error.
	ErrorDismissed bool
}
