package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	clientsPath  = "/api/auth/clients/{clientID}"
	registerPath = "/api/auth/register"
	tokenPath    = "/api/auth/token"
	snapshotPath = "/api/snapshot"
)

type httpCloudTransport struct {
	client    *utils.HTTPClient
	grants    GrantStore
	consenter Consenter

	mu          sync.RWMutex
	clientID    string
	initialized bool
	token       string

	logger *logger.Logger
}

// NewHTTPCloudTransport constructs an HTTP/REST implementation of
// [CloudTransport]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout. adapterCfg.ClientID is used when
// Authenticate runs before a successful Init.
//
// grants persists the refresh grant between runs. consenter may be nil, in
// which case interactive authentication always fails.
func NewHTTPCloudTransport(adapterCfg config.ClientAdapter, grants GrantStore, consenter Consenter, log *logger.Logger) (CloudTransport, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if grants == nil {
		return nil, errors.New("grant store is required")
	}

	return &httpCloudTransport{
		client:    utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		grants:    grants,
		consenter: consenter,
		clientID:  adapterCfg.ClientID,
		logger:    log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Init implements [CloudTransport]. It calls GET /api/auth/clients/{clientID}
// and remembers a 2xx answer.
func (h *httpCloudTransport) Init(ctx context.Context, clientID string) error {
	h.mu.RLock()
	done := h.initialized && h.clientID == clientID
	h.mu.RUnlock()
	if done {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("clientID", clientID).
		Get(clientsPath)
	if err != nil {
		return fmt.Errorf("%w: init request: %w", ErrSDKInit, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrSDKInit, err)
	}

	h.mu.Lock()
	h.clientID = clientID
	h.initialized = true
	h.mu.Unlock()

	h.logger.Debug().Str("func", "httpCloudTransport.Init").Str("client_id", clientID).Msg("cloud client initialized")
	return nil
}

// Authenticate implements [CloudTransport].
func (h *httpCloudTransport) Authenticate(ctx context.Context, mode models.AuthMode) error {
	h.mu.RLock()
	initialized, clientID := h.initialized, h.clientID
	h.mu.RUnlock()
	if !initialized {
		if err := h.Init(ctx, clientID); err != nil {
			return err
		}
	}

	switch mode {
	case models.AuthModeNone:
		return h.authenticateSilent(ctx, clientID)
	case models.AuthModeConsent:
		return h.authenticateConsent(ctx, clientID)
	default:
		return fmt.Errorf("%w: unknown auth mode %q", ErrAuthFailed, mode)
	}
}

func (h *httpCloudTransport) authenticateSilent(ctx context.Context, clientID string) error {
	grant, ok := h.grants.LoadGrant(ctx)
	if !ok {
		return fmt.Errorf("%w: no stored grant", ErrSessionExpired)
	}

	rejected, err := h.exchange(ctx, models.TokenRequest{
		GrantType:    models.GrantTypeRefreshToken,
		RefreshToken: grant,
		ClientID:     clientID,
	})
	if err == nil {
		return nil
	}
	if rejected {
		h.grants.ClearGrant(ctx)
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func (h *httpCloudTransport) authenticateConsent(ctx context.Context, clientID string) error {
	if h.consenter == nil {
		return fmt.Errorf("%w: %w", ErrAuthFailed, ErrNoConsenter)
	}

	creds, ok := h.consenter.Consent(ctx)
	if !ok {
		return fmt.Errorf("%w: consent declined", ErrAuthFailed)
	}

	if creds.Register {
		if err := h.register(ctx, creds); err != nil && !errors.Is(err, ErrConflict) {
			return fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
	}

	if _, err := h.exchange(ctx, models.TokenRequest{
		GrantType: models.GrantTypePassword,
		Login:     creds.Login,
		Password:  creds.Password,
		ClientID:  clientID,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return nil
}

// register creates the cloud account. 409 means it already exists, the token
// exchange that follows checks the password.
func (h *httpCloudTransport) register(ctx context.Context, creds models.Credentials) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: creds.Login, Name: creds.Login, Password: creds.Password}).
		Post(registerPath)
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	return mapHTTPError(resp)
}

// exchange posts req to the token endpoint, keeps the access token and stores
// the rotated refresh grant. rejected is true when the server refused the
// grant or the credentials.
func (h *httpCloudTransport) exchange(ctx context.Context, req models.TokenRequest) (rejected bool, err error) {
	var tokens models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&tokens).
		ForceContentType("application/json").
		Post(tokenPath)
	if err != nil {
		return false, fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return isCredentialRejection(resp), err
	}
	if tokens.AccessToken == "" {
		return false, errors.New("token response without access token")
	}

	h.mu.Lock()
	h.token = strings.TrimSpace(tokens.AccessToken)
	h.mu.Unlock()

	if tokens.RefreshToken != "" {
		h.grants.SaveGrant(ctx, tokens.RefreshToken)
	}

	h.logToken(tokens.AccessToken, req.GrantType)
	return false, nil
}

func (h *httpCloudTransport) logToken(accessToken, grantType string) {
	event := h.logger.Info().Str("func", "httpCloudTransport.exchange").Str("grant_type", grantType)

	claims, err := utils.ParseClaimsUnverified(accessToken)
	if err != nil {
		event.Err(err).Msg("connected to cloud with unreadable access token")
		return
	}
	if claims.ExpiresAt != nil {
		event = event.Time("expires_at", claims.ExpiresAt.Time).Dur("valid_for", time.Until(claims.ExpiresAt.Time).Round(time.Second))
	}
	event.Str("subject", claims.Subject).Msg("connected to cloud")
}

func (h *httpCloudTransport) accessToken() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.token == "" {
		return "", fmt.Errorf("%w: %w", ErrTransport, ErrUnauthorized)
	}
	return h.token, nil
}

// authorized sends the request built by call with the current access token.
// A 401 answer triggers one silent refresh from the stored grant and a second
// attempt. A refused grant ends in [ErrSessionExpired].
func (h *httpCloudTransport) authorized(ctx context.Context, what string, call func(token string) (*resty.Response, error)) (*resty.Response, error) {
	token, err := h.accessToken()
	if err != nil {
		return nil, err
	}

	resp, err := call(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request: %w", ErrTransport, what, err)
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	h.logger.Info().Str("func", "httpCloudTransport.authorized").Str("request", what).Msg("access token rejected, refreshing")
	h.mu.RLock()
	clientID := h.clientID
	h.mu.RUnlock()
	if err = h.authenticateSilent(ctx, clientID); err != nil {
		return nil, err
	}
	if token, err = h.accessToken(); err != nil {
		return nil, err
	}

	resp, err = call(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request: %w", ErrTransport, what, err)
	}
	return resp, nil
}

// LoadFromCloud implements [CloudTransport]. It calls GET /api/snapshot; 404
// means the cloud holds no snapshot yet.
func (h *httpCloudTransport) LoadFromCloud(ctx context.Context) (*models.CloudBlob, error) {
	var blob models.CloudBlob
	resp, err := h.authorized(ctx, "load snapshot", func(token string) (*resty.Response, error) {
		blob = models.CloudBlob{}
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&blob).
			ForceContentType("application/json").
			Get(snapshotPath)
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return &blob, nil
}

// SaveToCloud implements [CloudTransport]. It calls PUT /api/snapshot with the
// whole blob.
func (h *httpCloudTransport) SaveToCloud(ctx context.Context, blob models.CloudBlob) error {
	resp, err := h.authorized(ctx, "save snapshot", func(token string) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json").
			SetBody(blob).
			Put(snapshotPath)
	})
	if err != nil {
		return err
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return nil
}

// SignOut implements [CloudTransport].
func (h *httpCloudTransport) SignOut(ctx context.Context) error {
	h.mu.Lock()
	h.token = ""
	h.mu.Unlock()

	h.grants.ClearGrant(ctx)
	h.logger.Info().Str("func", "httpCloudTransport.SignOut").Msg("signed out of cloud")
	return nil
}
