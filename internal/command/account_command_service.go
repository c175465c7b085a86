package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gayu2216/MarketPulse/internal/cqrs"
	"github.com/gayu2216/MarketPulse/internal/events"
	"github.com/gayu2216/MarketPulse/internal/metrics"
	"github.com/gayu2216/MarketPulse/internal/models"
	"github.com/gayu2216/MarketPulse/internal/repository"
	"github.com/gayu2216/MarketPulse/internal/utils"
)

// AccountCommandService writes account state to PostgreSQL and keeps the
// Redis read model up to date.
type AccountCommandService struct {
	writeRepo *repository.AccountWriteRepository
	readRepo  *repository.AccountReadRepository
	uploads   *repository.UploadRepository
	auditRepo *repository.AuditRepository
	publisher *events.Publisher
	collector *metrics.Collector
}

func NewAccountCommandService(
	writeRepo *repository.AccountWriteRepository,
	readRepo *repository.AccountReadRepository,
	uploads *repository.UploadRepository,
	auditRepo *repository.AuditRepository,
	publisher *events.Publisher,
	collector *metrics.Collector,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		uploads:   uploads,
		auditRepo: auditRepo,
		publisher: publisher,
		collector: collector,
	}
}

// RegisterAccount validates the registration data, creates the account and
// publishes account.created. Validation rules: username 3-14 alphanumeric,
// password 9-24 alphanumeric with at least one capital letter and digit.
func (s *AccountCommandService) RegisterAccount(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	if !utils.IsUsernameValid(cmd.Username) {
		return nil, models.ErrInvalidUsername
	}
	if !utils.IsPasswordValid(cmd.Password) {
		return nil, models.ErrInvalidPassword
	}
	if cmd.Password != cmd.ConfirmPassword {
		return nil, models.ErrPasswordMismatch
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           utils.GenerateID("acc"),
		Username:     cmd.Username,
		Email:        cmd.Email,
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Phone:        cmd.Phone,
		PasswordHash: passwordHash,
		Status:       models.AccountStatusActive,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.readRepo.CacheAccountView(ctx, accountToView(account))
	s.collector.RecordRegistration()
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}

// UpdateAccount applies profile changes to the caller's own account. Blank
// fields keep their current value. Accounts already in the deletion state
// machine refuse updates.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.AccountView, error) {
	if cmd.AccountID != cmd.RequestingUserID {
		return nil, models.ErrForbidden
	}

	account, err := s.writeRepo.FindByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Status == models.AccountStatusDeleted {
		return nil, models.ErrAccountNotFound
	}
	if account.Status != models.AccountStatusActive {
		return nil, models.ErrAccountNotActive
	}

	if cmd.FirstName != "" {
		account.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		account.LastName = cmd.LastName
	}
	if cmd.Email != "" {
		account.Email = cmd.Email
	}
	if cmd.Phone != "" {
		account.Phone = cmd.Phone
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.writeRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	view := accountToView(account)
	s.readRepo.CacheAccountView(ctx, view)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID: account.ID,
		Email:     account.Email,
	}); err != nil {
		log.Printf("Failed to publish account.updated event: %v", err)
	}
	return view, nil
}

// RegisterUpload records upload metadata owned by the caller's account.
func (s *AccountCommandService) RegisterUpload(ctx context.Context, cmd cqrs.RegisterUploadCommand) (*models.Upload, error) {
	if cmd.AccountID != cmd.RequestingUserID {
		return nil, models.ErrForbidden
	}

	account, err := s.writeRepo.FindByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Status == models.AccountStatusDeleted {
		return nil, models.ErrAccountNotFound
	}
	if account.Status != models.AccountStatusActive {
		return nil, models.ErrAccountNotActive
	}

	upload := &models.Upload{
		ID:        uuid.NewString(),
		AccountID: cmd.AccountID,
		Filename:  cmd.Filename,
		SizeBytes: cmd.SizeBytes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		return nil, err
	}
	return upload, nil
}

// HandleAccountEvent is the Redis stream subscriber handler. It records an
// audit row for every completed deletion. The insert is idempotent, so
// at-least-once delivery is safe.
func (s *AccountCommandService) HandleAccountEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.AccountDeleted {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.AccountDeletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal account.deleted event: %w", err)
	}
	log.Printf("Account %s deleted (requested by %s)", data.AccountID, data.RequestedBy)
	return s.auditRepo.RecordDeletion(ctx, &models.DeletionAudit{
		AccountID:   data.AccountID,
		RequestedBy: data.RequestedBy,
		RequestID:   data.RequestID,
		OccurredAt:  event.Timestamp,
	})
}

// accountToView converts the PostgreSQL write model to the Redis read view.
func accountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
