package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gayu2216/MarketPulse/internal/models"
)

// AuditRepository persists completed-deletion audit records. Writes are
// idempotent because the event stream delivers at-least-once.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) RecordDeletion(ctx context.Context, audit *models.DeletionAudit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deletion_audit (account_id, requested_by, request_id, occurred_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (account_id) DO NOTHING`,
		audit.AccountID, audit.RequestedBy, audit.RequestID, audit.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record deletion audit: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByAccountID(ctx context.Context, accountID string) (*models.DeletionAudit, error) {
	var audit models.DeletionAudit
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, requested_by, request_id, occurred_at
		 FROM deletion_audit WHERE account_id = $1`,
		accountID,
	).Scan(&audit.AccountID, &audit.RequestedBy, &audit.RequestID, &audit.OccurredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find deletion audit: %w", err)
	}
	return &audit, nil
}
