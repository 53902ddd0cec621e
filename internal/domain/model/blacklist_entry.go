package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BlacklistEntry bars an identity from applying. Entries are soft-deleted
// (deactivated) rather than removed, preserving the audit trail.
type BlacklistEntry struct {
	id         string
	nationalID string
	lineUserID string
	reason     string
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBlacklistEntry creates an active entry. At least one of nationalID and
// lineUserID must be set.
func NewBlacklistEntry(nationalID, lineUserID, reason string, now time.Time) (BlacklistEntry, error) {
	if nationalID == "" && lineUserID == "" {
		return BlacklistEntry{}, errors.New("blacklist entry needs a national ID or a line user ID")
	}
	if reason == "" {
		return BlacklistEntry{}, errors.New("blacklist reason is required")
	}
	return BlacklistEntry{
		id:         uuid.New().String(),
		nationalID: nationalID,
		lineUserID: lineUserID,
		reason:     reason,
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructBlacklistEntry rebuilds an entry from persistence.
func ReconstructBlacklistEntry(id, nationalID, lineUserID, reason string, active bool, createdAt, updatedAt time.Time) BlacklistEntry {
	return BlacklistEntry{
		id:         id,
		nationalID: nationalID,
		lineUserID: lineUserID,
		reason:     reason,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Deactivate soft-deletes the entry.
func (e BlacklistEntry) Deactivate(now time.Time) BlacklistEntry {
	next := e
	next.active = false
	next.updatedAt = now
	return next
}

func (e BlacklistEntry) ID() string           { return e.id }
func (e BlacklistEntry) NationalID() string   { return e.nationalID }
func (e BlacklistEntry) LineUserID() string   { return e.lineUserID }
func (e BlacklistEntry) Reason() string       { return e.reason }
func (e BlacklistEntry) Active() bool         { return e.active }
func (e BlacklistEntry) CreatedAt() time.Time { return e.createdAt }
func (e BlacklistEntry) UpdatedAt() time.Time { return e.updatedAt }
