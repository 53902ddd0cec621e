package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying an assessed credit score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "low"}
	RiskLevelMedium   = RiskLevel{value: "medium"}
	RiskLevelHigh     = RiskLevel{value: "high"}
	RiskLevelVeryHigh = RiskLevel{value: "very_high"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	case "very_high":
		return RiskLevelVeryHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a credit score (300-850).
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 700:
		return RiskLevelLow
	case score >= 600:
		return RiskLevelMedium
	case score >= 450:
		return RiskLevelHigh
	default:
		return RiskLevelVeryHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }
