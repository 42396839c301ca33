package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/mock"
	"github.com/MKhiriev/go-dash-sync/internal/service"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	goodToken = "good-token"
	testOwner = "alice"
)

// ---- Helpers ----

type testDeps struct {
	auth     *mock.MockAuthService
	snapshot *mock.MockSnapshotService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := &testDeps{
		auth:     mock.NewMockAuthService(ctrl),
		snapshot: mock.NewMockSnapshotService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{
		AuthService:     deps.auth,
		SnapshotService: deps.snapshot,
		AppInfoService:  deps.appInfo,
	}, logger.Nop())
	return h, deps
}

func newTestRouter(t *testing.T) (http.Handler, *testDeps) {
	t.Helper()
	h, deps := newTestHandler(t)
	return h.Init(), deps
}

// allowToken makes goodToken resolve to testOwner.
func (d *testDeps) allowToken() {
	d.auth.EXPECT().ParseAccessToken(gomock.Any(), goodToken).Return(models.Token{
		Claims: models.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: testOwner}},
	}, nil).AnyTimes()
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

// ---- NewHandler ----

func TestNewHandler(t *testing.T) {
	h, _ := newTestHandler(t)

	require.NotNil(t, h)
	assert.NotNil(t, h.services)
	assert.NotNil(t, h.metrics)
	assert.NotNil(t, h.logger)
}

func TestNewHandler_IndependentRegistries(t *testing.T) {
	first, _ := newTestHandler(t)
	second, _ := newTestHandler(t)

	assert.NotSame(t, first.metrics.registry, second.metrics.registry)
}
