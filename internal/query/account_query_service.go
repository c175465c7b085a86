package query

import (
	"context"

	"github.com/gayu2216/MarketPulse/internal/authz"
	"github.com/gayu2216/MarketPulse/internal/cqrs"
	"github.com/gayu2216/MarketPulse/internal/models"
	"github.com/gayu2216/MarketPulse/internal/repository"
)

// Viewer authorizes read access to an account's data.
type Viewer interface {
	CanView(p authz.Principal, accountID string) bool
}

// AccountQueryService reads account views from the Redis cache (with a
// Postgres fallback) and upload listings from Postgres.
type AccountQueryService struct {
	readRepo   *repository.AccountReadRepository
	uploads    *repository.UploadRepository
	authorizer Viewer
}

func NewAccountQueryService(
	readRepo *repository.AccountReadRepository,
	uploads *repository.UploadRepository,
	authorizer Viewer,
) *AccountQueryService {
	return &AccountQueryService{
		readRepo:   readRepo,
		uploads:    uploads,
		authorizer: authorizer,
	}
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	p := authz.Principal{UserID: q.RequestingUserID, Role: authz.Role(q.RequestingRole)}
	if !s.authorizer.CanView(p, q.AccountID) {
		return nil, models.ErrForbidden
	}
	return s.readRepo.GetByID(ctx, q.AccountID)
}

func (s *AccountQueryService) ListUploads(ctx context.Context, q cqrs.ListUploadsQuery) ([]models.Upload, error) {
	p := authz.Principal{UserID: q.RequestingUserID, Role: authz.Role(q.RequestingRole)}
	if !s.authorizer.CanView(p, q.AccountID) {
		return nil, models.ErrForbidden
	}
	return s.uploads.ListByAccountID(ctx, q.AccountID)
}
