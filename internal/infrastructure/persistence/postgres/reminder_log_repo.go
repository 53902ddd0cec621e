package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
)

// ReminderLogRepo implements port.ReminderLogRepository. The unique index on
// (borrower_id, tier, sent_on) makes the insert the idempotence gate for the
// sweep's reminder dispatch.
type ReminderLogRepo struct {
	pool *pgxpool.Pool
}

// NewReminderLogRepo creates a new repository backed by PostgreSQL.
func NewReminderLogRepo(pool *pgxpool.Pool) *ReminderLogRepo {
	return &ReminderLogRepo{pool: pool}
}

// TryInsert appends the entry. Returns false without error when an entry for
// the same (borrower, tier, day) key already exists.
func (r *ReminderLogRepo) TryInsert(ctx context.Context, entry model.ReminderLog) (bool, error) {
	query := `
		INSERT INTO reminder_logs (id, borrower_id, tier, sent_on, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (borrower_id, tier, sent_on) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.ID(), entry.BorrowerID(), entry.Tier().String(),
		entry.SentOn(), entry.CreatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("insert reminder log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
