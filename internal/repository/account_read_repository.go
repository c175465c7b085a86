package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gayu2216/MarketPulse/internal/models"
	sharedredis "github.com/gayu2216/MarketPulse/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository handles all read operations for accounts.
// It uses Redis as the primary read store, falling back to PostgreSQL on a
// miss. Deleted accounts are invisible to readers.
type AccountReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.AccountView](redisClient, 0),
	}
}

// GetByID returns an AccountView from Redis first, then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.AccountView, error) {
	cacheKey := accountViewKeyPrefix + id

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, username, email, first_name, last_name, phone,
			   status, created_at, updated_at
		FROM accounts
		WHERE id = $1 AND status != 'deleted'
	`
	var view models.AccountView
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Username, &view.Email,
		&view.FirstName, &view.LastName, &view.Phone,
		&view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account view: %w", err)
	}

	// Warm the cache
	r.CacheAccountView(ctx, &view)
	return &view, nil
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called by the command service after every mutation.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, accountViewKeyPrefix+view.ID, view)
}

// InvalidateAccountView removes the Redis read model entry for an account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, accountID string) {
	r.cache.Delete(ctx, accountViewKeyPrefix+accountID)
}
