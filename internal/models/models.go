package models

import "time"

// AccountStatus is the lifecycle state of an account. Transitions are
// monotonic: active -> pending_deletion -> deleted. There is no way back.
type AccountStatus string

const (
	AccountStatusActive          AccountStatus = "active"
	AccountStatusPendingDeletion AccountStatus = "pending_deletion"
	AccountStatusDeleted         AccountStatus = "deleted"
)

type Account struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Phone        string        `json:"phone,omitempty"`
	PasswordHash string        `json:"-"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdTimestamp"`
	UpdatedAt    time.Time     `json:"updatedTimestamp"`
	DeletedAt    *time.Time    `json:"deletedTimestamp,omitempty"`
}

// Upload is a piece of owned account data: metadata for a file the account
// holder uploaded. Upload rows are removed during account deletion cleanup.
type Upload struct {
	ID        string    `json:"id"`
	AccountID string    `json:"-"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// DeletionOutcome classifies the result of a delete-account operation.
type DeletionOutcome string

const (
	DeletionSuccess      DeletionOutcome = "success"
	DeletionNotFound     DeletionOutcome = "not_found"
	DeletionUnauthorized DeletionOutcome = "unauthorized"
	DeletionFailed       DeletionOutcome = "failed"
)

// DeletionResult is produced exactly once per delete request and is
// immutable after creation. Detail carries the collaborator error message
// when Outcome is DeletionFailed.
type DeletionResult struct {
	Outcome DeletionOutcome `json:"outcome"`
	Detail  string          `json:"detail,omitempty"`
}

// DeletionAudit records a completed account deletion. It is written by the
// event subscriber, not by the deletion controller itself.
type DeletionAudit struct {
	AccountID   string    `json:"accountId"`
	RequestedBy string    `json:"requestedBy"`
	RequestID   string    `json:"requestId"`
	OccurredAt  time.Time `json:"occurredAt"`
}
