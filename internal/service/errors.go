package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrUnsupportedGrantType    = errors.New("unsupported grant type")
	ErrUnknownClient           = errors.New("unknown client")

	ErrVersionIsNotSpecified = errors.New("version is not specified")

	ErrDuplicateRecordID = errors.New("duplicate record id")
	ErrEmptyRecordID     = errors.New("record without id")

	ErrSyncInProgress = errors.New("sync already in progress")
)
