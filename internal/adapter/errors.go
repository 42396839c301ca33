package adapter

import "errors"

var (
	ErrSDKInit        = errors.New("cloud sdk initialization failed")
	ErrSessionExpired = errors.New("cloud session expired")
	ErrAuthFailed     = errors.New("cloud authentication failed")
	ErrTransport      = errors.New("cloud transport failure")
	ErrNotInitialized = errors.New("cloud transport is not initialized")
	ErrNoConsenter    = errors.New("no consenter configured")
)

// Errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
)
