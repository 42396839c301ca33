package tui

import "github.com/MKhiriev/go-dash-sync/models"

// readyMsg arrives once the engine finished cold-start initialization.
type readyMsg struct{}

// syncStateMsg carries every state the engine publishes.
type syncStateMsg models.SyncState

type connectDoneMsg struct {
	err error
}

// mutationDoneMsg reports a record operation; ok is false when nothing
// changed (declined, refused or unknown record).
type mutationDoneMsg struct {
	ok bool
}

type logoutDoneMsg struct {
	ok bool
}

// confirmRequestMsg asks the user a yes/no question on behalf of a service.
type confirmRequestMsg struct {
	question string
	reply    chan<- bool
}

// consentRequestMsg asks the user for cloud credentials.
type consentRequestMsg struct {
	reply chan<- consentReply
}

type consentReply struct {
	creds models.Credentials
	ok    bool
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
