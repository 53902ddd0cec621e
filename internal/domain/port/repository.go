package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/event"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// BorrowerRepository persists and retrieves borrower records.
type BorrowerRepository interface {
	Save(ctx context.Context, b model.Borrower) error
	FindByID(ctx context.Context, id string) (model.Borrower, error)
	// FindOpenByIdentity returns non-terminal (pending/approved) records
	// matching the national ID or the line user ID.
	FindOpenByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.Borrower, error)
	// CountBySubjectCreatedSince counts records for the subject created at or
	// after the given instant, regardless of status.
	CountBySubjectCreatedSince(ctx context.Context, lineUserID string, since time.Time) (int, error)
	ListByStatus(ctx context.Context, status valueobject.BorrowerStatus) ([]model.Borrower, error)
	// RepaymentStats aggregates the applicant's completed loans for scoring.
	RepaymentStats(ctx context.Context, nationalID string) (model.RepaymentStats, error)
}

// BlacklistRepository persists and retrieves blacklist entries.
type BlacklistRepository interface {
	Save(ctx context.Context, e model.BlacklistEntry) error
	// FindActiveByIdentity returns active entries matching the national ID or
	// the line user ID.
	FindActiveByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.BlacklistEntry, error)
}

// ReminderLogRepository is the append-only reminder dispatch log.
type ReminderLogRepository interface {
	// TryInsert appends the entry, returning false (and no error) when an
	// entry with the same (borrowerID, tier, date) key already exists.
	TryInsert(ctx context.Context, entry model.ReminderLog) (bool, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// VerificationResult is the identity provider's answer for a national ID.
type VerificationResult struct {
	Valid   bool
	Status  string
	Message string
}

// IdentityVerifier checks a national ID against the external registry.
// Implementations bound their own retries; callers fall back to the local
// checksum when an error is returned.
type IdentityVerifier interface {
	Verify(ctx context.Context, nationalID string) (VerificationResult, error)
}

// ReminderRequest is handed to the messaging collaborator for dispatch.
type ReminderRequest struct {
	BorrowerID  string
	Tier        valueobject.EscalationTier
	TotalOwed   decimal.Decimal
	OverdueDays int
}

// ReminderDispatcher forwards reminder requests to the messaging collaborator.
type ReminderDispatcher interface {
	Dispatch(ctx context.Context, req ReminderRequest) error
}
