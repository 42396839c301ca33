package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is ordered: the first match wins.
var errorMappings = []errorMapping{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrEmptyRecordID, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrDuplicateRecordID, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrUnsupportedGrantType, http.StatusBadRequest, app.MsgUnsupportedGrantType},
	{service.ErrUnknownClient, http.StatusUnauthorized, app.MsgUnknownClient},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{store.ErrNoUserWasFound, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
	{store.ErrSnapshotNotFound, http.StatusNotFound, app.MsgSnapshotNotFound},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// errorResponse is the JSON body of every error answer.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, errorResponse{Error: message}, status)
}

// writeServiceError answers with the status mapped from err.
func writeServiceError(w http.ResponseWriter, err error) {
	status, message := statusFromError(err)
	writeError(w, status, message)
}

// decodeBody reads a JSON body of at most limit bytes. It answers the request
// itself and returns false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	// One byte past the limit lets MaxBytesReader report the overflow.
	if err := utils.DecodeJSON(r.Body, dest, limit+1); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
			return false
		}
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return false
	}
	return true
}
