package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{fmt.Errorf("%w: project %q", service.ErrDuplicateRecordID, "A"), http.StatusBadRequest, app.MsgInvalidDataProvided},
		{service.ErrUnsupportedGrantType, http.StatusBadRequest, app.MsgUnsupportedGrantType},
		{service.ErrUnknownClient, http.StatusUnauthorized, app.MsgUnknownClient},
		{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{fmt.Errorf("x: %w", store.ErrNoUserWasFound), http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
		{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
		{fmt.Errorf("get snapshot: %w", store.ErrSnapshotNotFound), http.StatusNotFound, app.MsgSnapshotNotFound},
		{fmt.Errorf("%w: dial", store.ErrStorageUnavailable), http.StatusServiceUnavailable, app.MsgStorageUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, msg := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
