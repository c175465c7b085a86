package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"
)

// AccountEventsStream is the Redis stream carrying account lifecycle events.
const AccountEventsStream = "account.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type AccountUpdatedEvent struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
}

// AccountDeletedEvent marks a deletion that ran to completion. RequestID
// correlates the event with the originating delete request; RequestedBy is
// the principal that asked for the deletion ("system" for reaper resumes).
type AccountDeletedEvent struct {
	AccountID   string `json:"accountId"`
	RequestedBy string `json:"requestedBy"`
	RequestID   string `json:"requestId"`
}
