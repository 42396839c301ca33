package models

import "time"

// User is a cloud account stored by the reference server.
type User struct {
	// UserID is the internal identifier, never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique account identifier and the snapshot owner key.
	Login string `json:"login"`

	Name string `json:"name"`

	// Password holds the plaintext password on the way in and the bcrypt hash
	// once loaded from storage.
	Password string `json:"password,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with User.
func (u User) TableName() string {
	return "users"
}

// StoredSnapshot is a cloud blob as persisted by the reference server.
type StoredSnapshot struct {
	Owner     string
	Payload   []byte
	UpdatedAt time.Time
}
