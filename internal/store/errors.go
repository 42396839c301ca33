package store

import "errors"

// Sentinel errors returned by the repositories. Match them with [errors.Is].
var (
	// ErrLoginAlreadyExists: a user with the same login is already registered.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound: the login matches no account.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSnapshotNotFound: the owner never stored a snapshot.
	ErrSnapshotNotFound = errors.New("snapshot was not found")

	// ErrStorageUnavailable marks transient backend failures.
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")

	// ErrUnknownDriver: the configured driver is not supported.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level operation errors, wrapped together with the driver error.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrObjectStorage      = errors.New("object storage request failed")
)
