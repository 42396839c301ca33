package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := doRequest(t, router, http.MethodGet, "/api/version/", nil, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestGetBuildInfo(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.2.3", "2026-03-01", ""))

	rr := doRequest(t, router, http.MethodGet, "/api/version/build", nil, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-03-01","commit":"N/A"}`, rr.Body.String())
}
