package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
)

// BlacklistRepo implements port.BlacklistRepository.
type BlacklistRepo struct {
	pool *pgxpool.Pool
}

// NewBlacklistRepo creates a new repository backed by PostgreSQL.
func NewBlacklistRepo(pool *pgxpool.Pool) *BlacklistRepo {
	return &BlacklistRepo{pool: pool}
}

// Save persists a blacklist entry (upsert by ID).
func (r *BlacklistRepo) Save(ctx context.Context, e model.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist_entries (
			id, national_id, line_user_id, reason, active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			reason     = EXCLUDED.reason,
			active     = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID(), e.NationalID(), e.LineUserID(), e.Reason(), e.Active(),
		e.CreatedAt(), e.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save blacklist entry: %w", err)
	}
	return nil
}

// FindActiveByIdentity retrieves active entries matching the national ID or
// the line user ID. Identity columns may be empty on either side; an empty
// input never matches.
func (r *BlacklistRepo) FindActiveByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.BlacklistEntry, error) {
	query := `
		SELECT id, national_id, line_user_id, reason, active, created_at, updated_at
		FROM blacklist_entries
		WHERE active
		  AND ((national_id <> '' AND national_id = $1)
		    OR (line_user_id <> '' AND line_user_id = $2))
	`
	rows, err := r.pool.Query(ctx, query, nationalID, lineUserID)
	if err != nil {
		return nil, fmt.Errorf("query blacklist entries: %w", err)
	}
	defer rows.Close()

	var result []model.BlacklistEntry
	for rows.Next() {
		var (
			id, natID, lineID, reason string
			active                    bool
			createdAt, updatedAt      time.Time
		)
		if err := rows.Scan(&id, &natID, &lineID, &reason, &active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		result = append(result, model.ReconstructBlacklistEntry(
			id, natID, lineID, reason, active, createdAt, updatedAt,
		))
	}
	return result, rows.Err()
}
