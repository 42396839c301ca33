package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/store"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification and the JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	// clientIDs are the registered dashboard clients.
	clientIDs []string

	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		clientIDs:            slices.Clone(cfg.ClientIDs),
		bcryptCost:           bcrypt.DefaultCost,
		logger:               logger,
	}
}

// RegisterUser creates a new cloud account.
//
// Login and Password are required. The password is stored as a bcrypt hash.
// Returns the persisted user without the password, or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if user.Name == "" {
		user.Name = user.Login
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = string(hash)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	registeredUser.Password = ""
	return registeredUser, nil
}

// Login authenticates an existing account.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the lookup fails (e.g. user not found, see
//     store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if creds.Login == "" || creds.Password == "" {
		log.Error().Str("login", creds.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, strings.TrimSpace(creds.Login))
	if err != nil {
		log.Err(err).Str("login", creds.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(creds.Password)); err != nil {
		log.Warn().Int64("id", foundUser.UserID).Str("login", foundUser.Login).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	foundUser.Password = ""
	return foundUser, nil
}

// IssueTokens answers POST /api/auth/token.
//
// The password grant checks the credentials; the refresh_token grant checks
// that the presented token is a valid refresh token issued to the same client
// and that its account still exists. Both return a fresh access token and a
// rotated refresh token.
func (a *authService) IssueTokens(ctx context.Context, req models.TokenRequest) (models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	if !a.IsClientAllowed(ctx, req.ClientID) {
		log.Warn().Str("client_id", req.ClientID).Msg("token requested by unknown client")
		return models.TokenResponse{}, ErrUnknownClient
	}

	var owner string
	switch req.GrantType {
	case models.GrantTypePassword:
		user, err := a.Login(ctx, models.Credentials{Login: req.Login, Password: req.Password})
		if err != nil {
			return models.TokenResponse{}, err
		}
		owner = user.Login

	case models.GrantTypeRefreshToken:
		token, err := utils.ValidateAndParseJWTToken(req.RefreshToken, a.tokenSignKey, a.tokenIssuer, models.TokenKindRefresh)
		if err != nil {
			log.Warn().Err(err).Msg("refresh grant rejected")
			return models.TokenResponse{}, ErrTokenIsExpiredOrInvalid
		}
		if token.Claims.ClientID != req.ClientID {
			log.Warn().Str("client_id", req.ClientID).Str("token_client_id", token.Claims.ClientID).Msg("refresh grant issued to a different client")
			return models.TokenResponse{}, ErrTokenIsExpiredOrInvalid
		}
		if _, err = a.userRepository.FindUserByLogin(ctx, token.Owner()); err != nil {
			log.Err(err).Str("login", token.Owner()).Msg("refresh grant for missing account")
			if errors.Is(err, store.ErrNoUserWasFound) {
				return models.TokenResponse{}, ErrTokenIsExpiredOrInvalid
			}
			return models.TokenResponse{}, fmt.Errorf("user search by login failed: %w", err)
		}
		owner = token.Owner()

	default:
		return models.TokenResponse{}, ErrUnsupportedGrantType
	}

	return a.createTokens(owner, req.ClientID)
}

func (a *authService) createTokens(owner, clientID string) (models.TokenResponse, error) {
	access, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		Subject:  owner,
		Kind:     models.TokenKindAccess,
		ClientID: clientID,
		Duration: a.accessTokenDuration,
		SignKey:  a.tokenSignKey,
	})
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   a.tokenIssuer,
		Subject:  owner,
		Kind:     models.TokenKindRefresh,
		ClientID: clientID,
		Duration: a.refreshTokenDuration,
		SignKey:  a.tokenSignKey,
	})
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenResponse{
		AccessToken:  access.SignedString,
		RefreshToken: refresh.SignedString,
		ExpiresIn:    int64(a.accessTokenDuration / time.Second),
		TokenType:    "Bearer",
	}, nil
}

// ParseAccessToken validates and parses a raw bearer token.
//
// Any validation failure (expired, wrong issuer, wrong kind, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.TokenKindAccess)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// IsClientAllowed reports whether clientID is one of the registered clients.
func (a *authService) IsClientAllowed(ctx context.Context, clientID string) bool {
	return clientID != "" && slices.Contains(a.clientIDs, clientID)
}
