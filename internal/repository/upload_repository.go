package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gayu2216/MarketPulse/internal/models"
)

// UploadRepository persists upload metadata, the owned resources removed
// during account deletion.
type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO uploads (id, account_id, filename, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		upload.ID, upload.AccountID, upload.Filename, upload.SizeBytes, upload.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	return nil
}

func (r *UploadRepository) ListByAccountID(ctx context.Context, accountID string) ([]models.Upload, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, filename, size_bytes, created_at
		 FROM uploads WHERE account_id = $1
		 ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.ID, &u.AccountID, &u.Filename, &u.SizeBytes, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload row: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}
