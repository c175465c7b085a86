package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/gayu2216/MarketPulse/internal/models"
)

// AccountWriteRepository handles all state-mutating operations for accounts.
// It operates exclusively against the PostgreSQL write store (source of
// truth). The Mark* methods are conditional state transitions: they report
// whether this caller performed the transition, which is what makes the
// deletion state machine race-safe across processes.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, email, first_name, last_name, phone,
			password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Email,
		account.FirstName, account.LastName, account.Phone,
		account.PasswordHash, account.Status,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByID fetches the full write model, including PasswordHash and
// terminal-state rows. Returns (nil, nil) when no row exists.
func (r *AccountWriteRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, username, email, first_name, last_name, phone,
			   password_hash, status, created_at, updated_at, deleted_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.FirstName, &account.LastName, &account.Phone,
		&account.PasswordHash, &account.Status,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

// Update writes profile fields. Only active accounts can be updated.
func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET first_name = $2, last_name = $3, email = $4, phone = $5, updated_at = $6
		WHERE id = $1 AND status = 'active'
	`
	result, err := r.db.ExecContext(ctx, query,
		account.ID, account.FirstName, account.LastName,
		account.Email, account.Phone, account.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}

// MarkPendingDeletion transitions active -> pending_deletion. Returns true
// only for the caller that performed the transition.
func (r *AccountWriteRepository) MarkPendingDeletion(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET status = 'pending_deletion', updated_at = NOW()
		 WHERE id = $1 AND status = 'active'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark account pending deletion: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// DeleteOwnedResources removes all data owned by the account. Must be
// idempotent: the reaper may re-run it after a partial failure.
func (r *AccountWriteRepository) DeleteOwnedResources(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete owned uploads: %w", err)
	}
	return nil
}

// MarkDeleted transitions pending_deletion -> deleted and anonymizes the
// row's personal data. The account ID survives so repeated deletes stay
// non-destructive.
func (r *AccountWriteRepository) MarkDeleted(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET status = 'deleted',
		     username = id,
		     email = id || '@deleted.invalid',
		     first_name = '',
		     last_name = '',
		     phone = '',
		     password_hash = '',
		     deleted_at = NOW(),
		     updated_at = NOW()
		 WHERE id = $1 AND status = 'pending_deletion'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark account deleted: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListPendingDeletion returns IDs of accounts stuck in pending_deletion,
// oldest first.
func (r *AccountWriteRepository) ListPendingDeletion(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM accounts WHERE status = 'pending_deletion'
		 ORDER BY updated_at ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deletions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending deletion row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
