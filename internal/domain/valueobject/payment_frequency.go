package valueobject

import "fmt"

// PaymentFrequency is an immutable value object for the repayment cadence.
type PaymentFrequency struct {
	value string
}

const (
	frequencyDaily   = "daily"
	frequencyWeekly  = "weekly"
	frequencyMonthly = "monthly"
)

var (
	FrequencyDaily   = PaymentFrequency{value: frequencyDaily}
	FrequencyWeekly  = PaymentFrequency{value: frequencyWeekly}
	FrequencyMonthly = PaymentFrequency{value: frequencyMonthly}
)

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	switch s {
	case frequencyDaily:
		return FrequencyDaily, nil
	case frequencyWeekly:
		return FrequencyWeekly, nil
	case frequencyMonthly:
		return FrequencyMonthly, nil
	default:
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
}

// String returns the string representation.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true when not initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies match.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }
