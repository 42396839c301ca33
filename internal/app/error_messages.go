// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// reference cloud server handlers and the dashboard client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Prompt* constants are the questions the dashboard asks before an
// irreversible action.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token or a refresh
	// grant is expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnsupportedGrantType is returned by the token endpoint for an unknown
	// grant_type.
	MsgUnsupportedGrantType = "unsupported grant type"

	// MsgUnknownClient is returned when the client id is not registered.
	MsgUnknownClient = "unknown client"

	MsgLoginAlreadyExists = "login already exists"

	MsgSnapshotNotFound = "snapshot not found"

	// MsgStorageUnavailable is returned when the snapshot or account storage
	// is temporarily unreachable and the request may be retried.
	MsgStorageUnavailable = "storage unavailable"
)

// Confirmation prompts.
const (
	PromptUseRemote      = "A snapshot already exists in the cloud. Replace local data with the cloud version?"
	PromptDeleteProjects = "Delete %d project(s)? This cannot be undone."
	PromptResetData      = "This clears all local data and restores the defaults. Continue?"
	PromptLogout         = "Sign out of the dashboard?"
)
