package valueobject

import "fmt"

// EscalationTier is the reminder severity bucket derived from days overdue.
type EscalationTier struct {
	value string
}

var (
	TierNone   = EscalationTier{value: "none"}
	TierGentle = EscalationTier{value: "gentle"}
	TierUrgent = EscalationTier{value: "urgent"}
	TierFinal  = EscalationTier{value: "final"}
)

// TierFromString reconstructs an EscalationTier from its string representation.
func TierFromString(s string) (EscalationTier, error) {
	switch s {
	case "none":
		return TierNone, nil
	case "gentle":
		return TierGentle, nil
	case "urgent":
		return TierUrgent, nil
	case "final":
		return TierFinal, nil
	default:
		return EscalationTier{}, fmt.Errorf("invalid escalation tier: %s", s)
	}
}

// TierFromOverdueDays selects the escalation tier for a number of days overdue.
// 1-3 days: gentle, 4-7 days: urgent, 8+ days: final.
func TierFromOverdueDays(days int) EscalationTier {
	switch {
	case days <= 0:
		return TierNone
	case days <= 3:
		return TierGentle
	case days <= 7:
		return TierUrgent
	default:
		return TierFinal
	}
}

// String returns the string representation.
func (t EscalationTier) String() string { return t.value }

// IsZero returns true when not initialised.
func (t EscalationTier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers match.
func (t EscalationTier) Equal(other EscalationTier) bool { return t.value == other.value }
