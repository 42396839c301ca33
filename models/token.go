package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "kind" claim.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenClaims is the claim set of every token issued by the cloud server.
//
// The subject is the login of the account that owns the snapshot.
type TokenClaims struct {
	jwt.RegisteredClaims
	Kind     string `json:"kind"`
	ClientID string `json:"cid,omitempty"`
}

// Token wraps a signed JWT with its parsed claims.
type Token struct {
	// Token is the underlying JWT, excluded from JSON.
	*jwt.Token `json:"-"`

	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Owner returns the login the token was issued to.
func (t *Token) Owner() string {
	return t.Claims.Subject
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
