package cqrs

// GetAccountQuery fetches a single account view, subject to an
// owner-or-admin check.
type GetAccountQuery struct {
	AccountID        string
	RequestingUserID string
	RequestingRole   string
}

// ListUploadsQuery fetches the upload metadata owned by an account.
type ListUploadsQuery struct {
	AccountID        string
	RequestingUserID string
	RequestingRole   string
}
