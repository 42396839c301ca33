package models

import "time"

// AuthMode selects how the cloud transport authenticates.
type AuthMode string

const (
	// AuthModeNone authenticates silently from a stored grant and never prompts.
	AuthModeNone AuthMode = "none"
	// AuthModeConsent asks the user for credentials.
	AuthModeConsent AuthMode = "consent"
)

// CloudBlob is the wire form of a snapshot stored in the cloud.
type CloudBlob struct {
	Projects    []Project    `json:"projects"`
	Customers   []Customer   `json:"customers"`
	TeamMembers []TeamMember `json:"teamMembers"`
	LastUpdated time.Time    `json:"lastUpdated"`
	UserEmail   string       `json:"userEmail,omitempty"`
}

// BlobFromSnapshot builds the blob pushed to the cloud.
func BlobFromSnapshot(s Snapshot, owner string, now time.Time) CloudBlob {
	s = s.Normalize()
	return CloudBlob{
		Projects:    s.Projects,
		Customers:   s.Customers,
		TeamMembers: s.TeamMembers,
		LastUpdated: now.UTC(),
		UserEmail:   owner,
	}
}

// Snapshot converts a pulled blob into a snapshot. Missing collections become
// empty, the remote snapshot always replaces the local one as a whole.
func (b CloudBlob) Snapshot() Snapshot {
	return Snapshot{
		Projects:      b.Projects,
		Customers:     b.Customers,
		TeamMembers:   b.TeamMembers,
		LastUpdated:   b.LastUpdated,
		OwnerIdentity: b.UserEmail,
	}.Normalize()
}

// Credentials are collected from the user during interactive authentication.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	// Register asks the transport to create the cloud account first.
	Register bool `json:"-"`
}

// Grant types accepted by the token endpoint.
const (
	GrantTypePassword     = "password"
	GrantTypeRefreshToken = "refresh_token"
)

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	Login        string `json:"login,omitempty"`
	Password     string `json:"password,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
}

// TokenResponse is returned by POST /api/auth/token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
