package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ReminderLog is one append-only entry in the reminder dispatch log.
// The (borrowerID, tier, date) key guarantees at most one reminder per tier
// per calendar day per borrower, however often the sweep reruns.
type ReminderLog struct {
	id         string
	borrowerID string
	tier       valueobject.EscalationTier
	sentOn     time.Time // calendar date, UTC midnight
	createdAt  time.Time
}

// NewReminderLog creates a log entry for the given calendar day.
func NewReminderLog(borrowerID string, tier valueobject.EscalationTier, day time.Time, now time.Time) ReminderLog {
	return ReminderLog{
		id:         uuid.New().String(),
		borrowerID: borrowerID,
		tier:       tier,
		sentOn:     day.UTC().Truncate(24 * time.Hour),
		createdAt:  now,
	}
}

// ReconstructReminderLog rebuilds an entry from persistence.
func ReconstructReminderLog(id, borrowerID string, tier valueobject.EscalationTier, sentOn, createdAt time.Time) ReminderLog {
	return ReminderLog{
		id:         id,
		borrowerID: borrowerID,
		tier:       tier,
		sentOn:     sentOn,
		createdAt:  createdAt,
	}
}

func (r ReminderLog) ID() string                       { return r.id }
func (r ReminderLog) BorrowerID() string               { return r.borrowerID }
func (r ReminderLog) Tier() valueobject.EscalationTier { return r.tier }
func (r ReminderLog) SentOn() time.Time                { return r.sentOn }
func (r ReminderLog) CreatedAt() time.Time             { return r.createdAt }
