package cqrs

type RegisterAccountCommand struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	Password        string
	ConfirmPassword string
}

type UpdateAccountCommand struct {
	AccountID        string
	RequestingUserID string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
}

type RegisterUploadCommand struct {
	AccountID        string
	RequestingUserID string
	Filename         string
	SizeBytes        int64
}
