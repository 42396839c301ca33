package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/mock"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSignKey  = "test-sign-key"
	testIssuer   = "go-dash-sync-test"
	testClientID = "dashboard-client"
)

func newTestAuthService(t *testing.T) (*authService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(repo, config.App{
		TokenSignKey:         testSignKey,
		TokenIssuer:          testIssuer,
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		ClientIDs:            []string{testClientID},
	}, logger.Nop()).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser(t *testing.T) {
	svc, repo := newTestAuthService(t)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "alice", u.Login)
			assert.Equal(t, "alice", u.Name, "name defaults to login")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret")))
			u.UserID = 7
			return u, nil
		})

	got, err := svc.RegisterUser(context.Background(), models.User{Login: "  alice ", Password: "secret"})

	require.NoError(t, err)
	assert.EqualValues(t, 7, got.UserID)
	assert.Empty(t, got.Password)
}

func TestAuthService_RegisterUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		repoErr error
		wantErr error
	}{
		{"empty login", models.User{Password: "p"}, nil, ErrInvalidDataProvided},
		{"empty password", models.User{Login: "a"}, nil, ErrInvalidDataProvided},
		{"login taken", models.User{Login: "a", Password: "p"}, store.ErrLoginAlreadyExists, store.ErrLoginAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)
			if tt.repoErr != nil {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.repoErr)
			}

			_, err := svc.RegisterUser(context.Background(), tt.user)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		password string
		found    bool
		wantErr  error
	}{
		{"correct password", "secret", true, nil},
		{"wrong password", "nope", true, ErrWrongPassword},
		{"unknown user", "secret", false, store.ErrNoUserWasFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)
			if tt.found {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").
					Return(models.User{UserID: 1, Login: "alice", Password: hashed(t, "secret")}, nil)
			} else {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, store.ErrNoUserWasFound)
			}

			user, err := svc.Login(context.Background(), models.Credentials{Login: "alice", Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Login)
			assert.Empty(t, user.Password)
		})
	}
}

// ── IssueTokens ──────────────────────────────────────────────────────────────

func TestAuthService_IssueTokens_PasswordGrant(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").
		Return(models.User{Login: "alice", Password: hashed(t, "secret")}, nil)

	resp, err := svc.IssueTokens(context.Background(), models.TokenRequest{
		GrantType: models.GrantTypePassword,
		Login:     "alice",
		Password:  "secret",
		ClientID:  testClientID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 900, resp.ExpiresIn)

	access, err := svc.ParseAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", access.Owner())
	assert.Equal(t, testClientID, access.Claims.ClientID)

	_, err = svc.ParseAccessToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, "refresh tokens are not accepted as access tokens")
}

func TestAuthService_IssueTokens_RefreshGrant(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{Login: "alice"}, nil)

	refresh, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer: testIssuer, Subject: "alice", Kind: models.TokenKindRefresh,
		ClientID: testClientID, Duration: time.Hour, SignKey: testSignKey,
	})
	require.NoError(t, err)

	resp, err := svc.IssueTokens(context.Background(), models.TokenRequest{
		GrantType:    models.GrantTypeRefreshToken,
		RefreshToken: refresh.SignedString,
		ClientID:     testClientID,
	})

	require.NoError(t, err)
	assert.NotEqual(t, refresh.SignedString, resp.RefreshToken, "refresh tokens rotate")
}

func TestAuthService_IssueTokens_RefreshGrantRejected(t *testing.T) {
	otherClient, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer: testIssuer, Subject: "alice", Kind: models.TokenKindRefresh,
		ClientID: "other-client", Duration: time.Hour, SignKey: testSignKey,
	})
	require.NoError(t, err)
	accessKind, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer: testIssuer, Subject: "alice", Kind: models.TokenKindAccess,
		ClientID: testClientID, Duration: time.Hour, SignKey: testSignKey,
	})
	require.NoError(t, err)
	valid, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer: testIssuer, Subject: "alice", Kind: models.TokenKindRefresh,
		ClientID: testClientID, Duration: time.Hour, SignKey: testSignKey,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		repoErr error
		wantErr error
	}{
		{"garbage", "not-a-jwt", nil, ErrTokenIsExpiredOrInvalid},
		{"issued to another client", otherClient.SignedString, nil, ErrTokenIsExpiredOrInvalid},
		{"access token presented", accessKind.SignedString, nil, ErrTokenIsExpiredOrInvalid},
		{"account deleted", valid.SignedString, store.ErrNoUserWasFound, ErrTokenIsExpiredOrInvalid},
		{"storage down", valid.SignedString, store.ErrStorageUnavailable, store.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)
			if tt.repoErr != nil {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, tt.repoErr)
			}

			_, err := svc.IssueTokens(context.Background(), models.TokenRequest{
				GrantType:    models.GrantTypeRefreshToken,
				RefreshToken: tt.token,
				ClientID:     testClientID,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_IssueTokens_RequestErrors(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.IssueTokens(context.Background(), models.TokenRequest{GrantType: models.GrantTypePassword, ClientID: "stranger"})
	assert.ErrorIs(t, err, ErrUnknownClient)

	_, err = svc.IssueTokens(context.Background(), models.TokenRequest{GrantType: "client_credentials", ClientID: testClientID})
	assert.ErrorIs(t, err, ErrUnsupportedGrantType)
}

func TestAuthService_ParseAccessToken_WrongKey(t *testing.T) {
	svc, _ := newTestAuthService(t)
	forged, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer: testIssuer, Subject: "alice", Kind: models.TokenKindAccess,
		Duration: time.Hour, SignKey: "another-key",
	})
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(context.Background(), forged.SignedString)
	assert.True(t, errors.Is(err, ErrTokenIsExpiredOrInvalid))
}

func TestAuthService_IsClientAllowed(t *testing.T) {
	svc, _ := newTestAuthService(t)

	assert.True(t, svc.IsClientAllowed(context.Background(), testClientID))
	assert.False(t, svc.IsClientAllowed(context.Background(), ""))
	assert.False(t, svc.IsClientAllowed(context.Background(), "stranger"))
}
