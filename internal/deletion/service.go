// Package deletion implements the account deletion controller: it
// authorizes a delete request, drives the account through the
// active -> pending_deletion -> deleted state machine, removes the
// account's owned data, and reports a definitive result.
package deletion

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gayu2216/MarketPulse/internal/authz"
	"github.com/gayu2216/MarketPulse/internal/events"
	"github.com/gayu2216/MarketPulse/internal/metrics"
	"github.com/gayu2216/MarketPulse/internal/models"
	"github.com/gayu2216/MarketPulse/internal/utils"
)

// Storage is the persistence collaborator. MarkPendingDeletion and
// MarkDeleted are conditional transitions: they return false when another
// actor already moved the account past that state.
type Storage interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	MarkPendingDeletion(ctx context.Context, id string) (bool, error)
	DeleteOwnedResources(ctx context.Context, id string) error
	MarkDeleted(ctx context.Context, id string) (bool, error)
	ListPendingDeletion(ctx context.Context, limit int) ([]string, error)
}

// Authorizer decides whether a principal may delete an account.
type Authorizer interface {
	CanDelete(p authz.Principal, accountID string) bool
}

// ViewInvalidator drops the read-model projection of a deleted account.
type ViewInvalidator interface {
	InvalidateAccountView(ctx context.Context, accountID string)
}

// EventPublisher announces completed deletions on the account event stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// deletionRequest is ephemeral: it exists only for the lifetime of one
// Delete call and is never persisted.
type deletionRequest struct {
	ID          string
	Requester   authz.Principal
	AccountID   string
	RequestedAt time.Time
}

// Service orchestrates account deletion. All collaborators are injected at
// construction; the service holds no global state beyond the per-account
// lock table.
type Service struct {
	storage    Storage
	authorizer Authorizer
	views      ViewInvalidator
	publisher  EventPublisher
	collector  *metrics.Collector
	locks      *accountLocks
}

func NewService(
	storage Storage,
	authorizer Authorizer,
	views ViewInvalidator,
	publisher EventPublisher,
	collector *metrics.Collector,
) *Service {
	return &Service{
		storage:    storage,
		authorizer: authorizer,
		views:      views,
		publisher:  publisher,
		collector:  collector,
		locks:      newAccountLocks(),
	}
}

// Delete removes accountID on behalf of principal and returns a definitive
// DeletionResult. Collaborator failures surface as a failed result, never
// as a panic or a partial success.
func (s *Service) Delete(ctx context.Context, principal authz.Principal, accountID string) models.DeletionResult {
	req := deletionRequest{
		ID:          uuid.NewString(),
		Requester:   principal,
		AccountID:   accountID,
		RequestedAt: time.Now().UTC(),
	}

	result := s.run(ctx, req)
	s.collector.RecordDeletionOutcome(string(result.Outcome))
	if result.Outcome == models.DeletionFailed {
		log.Printf("Account deletion failed: account=%s requester=%s detail=%s",
			accountID, principal.UserID, result.Detail)
	}
	return result
}

// Resume completes the cleanup of an account already in pending_deletion.
// Used by the reaper; it runs as the system principal and skips the
// authorization step a user-initiated delete performs.
func (s *Service) Resume(ctx context.Context, accountID string) models.DeletionResult {
	req := deletionRequest{
		ID:          uuid.NewString(),
		Requester:   authz.SystemPrincipal(),
		AccountID:   accountID,
		RequestedAt: time.Now().UTC(),
	}

	result := s.run(ctx, req)
	if result.Outcome == models.DeletionFailed {
		log.Printf("Deletion resume failed: account=%s detail=%s", accountID, result.Detail)
	}
	return result
}

// ResumePending sweeps up to limit accounts stuck in pending_deletion and
// completes their cleanup. Returns how many reached the deleted state.
func (s *Service) ResumePending(ctx context.Context, limit int) (int, error) {
	ids, err := s.storage.ListPendingDeletion(ctx, limit)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, id := range ids {
		if res := s.Resume(ctx, id); res.Outcome == models.DeletionSuccess {
			resumed++
		}
	}
	return resumed, nil
}

func (s *Service) run(ctx context.Context, req deletionRequest) models.DeletionResult {
	if !utils.ValidateAccountID(req.AccountID) {
		return models.DeletionResult{Outcome: models.DeletionNotFound}
	}

	// At most one deletion per account runs at a time in this process;
	// the conditional transitions in Storage guard cross-process races.
	unlock := s.locks.lock(req.AccountID)
	defer unlock()

	if !s.authorizer.CanDelete(req.Requester, req.AccountID) {
		return models.DeletionResult{Outcome: models.DeletionUnauthorized}
	}

	account, err := s.storage.FindByID(ctx, req.AccountID)
	if err != nil {
		return models.DeletionResult{Outcome: models.DeletionFailed, Detail: err.Error()}
	}
	if account == nil || account.Status == models.AccountStatusDeleted {
		// Absent or already fully deleted: repeated deletes are
		// already-satisfied, never a destructive error.
		return models.DeletionResult{Outcome: models.DeletionNotFound}
	}

	if account.Status == models.AccountStatusActive {
		claimed, err := s.storage.MarkPendingDeletion(ctx, req.AccountID)
		if err != nil {
			return models.DeletionResult{Outcome: models.DeletionFailed, Detail: err.Error()}
		}
		if !claimed {
			// Another process moved the account first. Re-read and
			// either resume its pending cleanup or report it gone.
			account, err = s.storage.FindByID(ctx, req.AccountID)
			if err != nil {
				return models.DeletionResult{Outcome: models.DeletionFailed, Detail: err.Error()}
			}
			if account == nil || account.Status != models.AccountStatusPendingDeletion {
				return models.DeletionResult{Outcome: models.DeletionNotFound}
			}
		}
	}

	// From here the account is in pending_deletion. A failure below leaves
	// it there, not rolled back to active, so a retry or the reaper can
	// resume the cleanup instead of losing the deletion intent.
	if err := s.storage.DeleteOwnedResources(ctx, req.AccountID); err != nil {
		return models.DeletionResult{Outcome: models.DeletionFailed, Detail: err.Error()}
	}

	s.views.InvalidateAccountView(ctx, req.AccountID)

	done, err := s.storage.MarkDeleted(ctx, req.AccountID)
	if err != nil {
		return models.DeletionResult{Outcome: models.DeletionFailed, Detail: err.Error()}
	}
	if done {
		if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
			AccountID:   req.AccountID,
			RequestedBy: req.Requester.UserID,
			RequestID:   req.ID,
		}); err != nil {
			log.Printf("Failed to publish account.deleted event: %v", err)
		}
	}
	// !done means another actor finished the terminal transition while we
	// were cleaning up; the deletion intent is satisfied either way.
	return models.DeletionResult{Outcome: models.DeletionSuccess}
}
