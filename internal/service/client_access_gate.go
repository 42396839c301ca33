package service

import "github.com/MKhiriev/go-dash-sync/models"

// AccessGate is the single write-permission check shared by every mutating
// entry point.
type AccessGate struct{}

// CanWrite reports whether a session exists and its role is not Guest.
func (AccessGate) CanWrite(session *models.Session) bool {
	return session.CanWrite()
}
