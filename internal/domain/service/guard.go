package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// cooldownWindow is how long a subject must wait after any submission,
// whatever its outcome, before submitting again.
const cooldownWindow = 24 * time.Hour

// ---------------------------------------------------------------------------
// Duplicate / Blacklist Guard
// ---------------------------------------------------------------------------

// IntakeGuard rejects applications from blacklisted identities, from
// identities that already hold an open (pending or approved) record, and from
// subjects that submitted anything at all within the cool-down window.
//
// The check-then-insert sequence is not atomic against the store: two near
// simultaneous submissions for the same identity can both pass. The window is
// accepted; the reminder log shows the conditional-insert pattern a stricter
// deployment would use here.
type IntakeGuard struct {
	borrowers port.BorrowerRepository
	blacklist port.BlacklistRepository
}

// NewIntakeGuard wires the guard to its repositories.
func NewIntakeGuard(borrowers port.BorrowerRepository, blacklist port.BlacklistRepository) *IntakeGuard {
	return &IntakeGuard{borrowers: borrowers, blacklist: blacklist}
}

// Check returns ErrBlacklisted or ErrDuplicateApplication when the identity
// must not proceed, a SystemError on store failure, and nil otherwise.
// The blacklist check runs first: a blacklisted identity is told so even when
// it also has an open record.
func (g *IntakeGuard) Check(ctx context.Context, nationalID, lineUserID string, now time.Time) error {
	entries, err := g.blacklist.FindActiveByIdentity(ctx, nationalID, lineUserID)
	if err != nil {
		return apperror.NewSystemError("guard.blacklist_lookup", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("identity barred (%s): %w", entries[0].Reason(), apperror.ErrBlacklisted)
	}

	open, err := g.borrowers.FindOpenByIdentity(ctx, nationalID, lineUserID)
	if err != nil {
		return apperror.NewSystemError("guard.duplicate_lookup", err)
	}
	if len(open) > 0 {
		return fmt.Errorf("open application %s already exists: %w", open[0].ID(), apperror.ErrDuplicateApplication)
	}

	// Any record in the window blocks, rejected ones included: a freshly
	// declined subject does not get to retry by the minute.
	recent, err := g.borrowers.CountBySubjectCreatedSince(ctx, lineUserID, now.Add(-cooldownWindow))
	if err != nil {
		return apperror.NewSystemError("guard.cooldown_lookup", err)
	}
	if recent > 0 {
		return fmt.Errorf("subject submitted within the last 24h: %w", apperror.ErrDuplicateApplication)
	}
	return nil
}
