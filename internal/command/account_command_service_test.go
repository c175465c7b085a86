package command

import (
	"context"
	"errors"
	"testing"

	"github.com/gayu2216/MarketPulse/internal/cqrs"
	"github.com/gayu2216/MarketPulse/internal/models"
)

// Validation paths reject before any repository access, so a zero service is
// sufficient here. Flows that reach the repositories are covered by the
// handler tests and the deletion service tests against fakes.

func TestRegisterAccountValidation(t *testing.T) {
	svc := &AccountCommandService{}

	tests := []struct {
		name    string
		cmd     cqrs.RegisterAccountCommand
		wantErr error
	}{
		{
			name: "username too short",
			cmd: cqrs.RegisterAccountCommand{
				Username: "ab", Password: "Password1", ConfirmPassword: "Password1",
			},
			wantErr: models.ErrInvalidUsername,
		},
		{
			name: "username with punctuation",
			cmd: cqrs.RegisterAccountCommand{
				Username: "al!ce", Password: "Password1", ConfirmPassword: "Password1",
			},
			wantErr: models.ErrInvalidUsername,
		},
		{
			name: "password without capital",
			cmd: cqrs.RegisterAccountCommand{
				Username: "alice", Password: "password1", ConfirmPassword: "password1",
			},
			wantErr: models.ErrInvalidPassword,
		},
		{
			name: "password without digit",
			cmd: cqrs.RegisterAccountCommand{
				Username: "alice", Password: "Passwords", ConfirmPassword: "Passwords",
			},
			wantErr: models.ErrInvalidPassword,
		},
		{
			name: "confirmation mismatch",
			cmd: cqrs.RegisterAccountCommand{
				Username: "alice", Password: "Password1", ConfirmPassword: "Password2",
			},
			wantErr: models.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterAccount(context.Background(), tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateAccountRejectsOtherAccounts(t *testing.T) {
	svc := &AccountCommandService{}

	_, err := svc.UpdateAccount(context.Background(), cqrs.UpdateAccountCommand{
		AccountID:        "acc-2",
		RequestingUserID: "acc-1",
		FirstName:        "Mallory",
	})
	if !errors.Is(err, models.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRegisterUploadRejectsOtherAccounts(t *testing.T) {
	svc := &AccountCommandService{}

	_, err := svc.RegisterUpload(context.Background(), cqrs.RegisterUploadCommand{
		AccountID:        "acc-2",
		RequestingUserID: "acc-1",
		Filename:         "prices.csv",
	})
	if !errors.Is(err, models.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
