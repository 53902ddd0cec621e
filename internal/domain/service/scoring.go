package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Credit Scoring Engine
// ---------------------------------------------------------------------------

// ScoringConfig is the immutable configuration of the scoring model. Callers
// pass it explicitly so that assessments are deterministic and the
// configuration can be versioned.
type ScoringConfig struct {
	BaseScore int
	Floor     int
	Ceiling   int

	// Address keyword lists. Low-risk markers are commercial/urban, high-risk
	// markers indicate informal settlements.
	LowRiskAddressKeywords  []string
	HighRiskAddressKeywords []string
	// ShortAddressRunes is the rune count below which an address is penalised.
	ShortAddressRunes int

	// PlaceholderNamePattern matches known placeholder/test names.
	PlaceholderNamePattern *regexp.Regexp
}

// DefaultScoringConfig returns the deployed scoring model configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:         600,
		Floor:             300,
		Ceiling:           850,
		ShortAddressRunes: 20,
		LowRiskAddressKeywords: []string{
			"อาคาร", "ตึก", "ถนน", "เมือง", "คอนโด", "หมู่บ้าน",
			"tower", "building", "road", "city", "condo",
		},
		HighRiskAddressKeywords: []string{
			"ชุมชนแออัด", "สลัม", "แพ", "ใต้สะพาน",
			"slum", "squatter",
		},
		PlaceholderNamePattern: regexp.MustCompile(`(?i)\b(test|demo|sample|fake|admin|asdf|qwerty|xxx|foo|bar)\b|ทดสอบ`),
	}
}

// Applicant is the scoring engine's view of one application.
type Applicant struct {
	FirstName       string
	LastName        string
	BirthDate       time.Time
	Address         string
	RequestedAmount decimal.Decimal
	Frequency       valueobject.PaymentFrequency
}

// ApplicantHistory is a snapshot of the applicant's past records, assembled
// by the caller as one pipeline before scoring. A stage that failed carries
// its error; the corresponding factor degrades instead of aborting the
// assessment.
type ApplicantHistory struct {
	Repayment    model.RepaymentStats
	RepaymentErr error

	ApplicationsLast24h int
	ApplicationsLast7d  int
	TimingErr           error
}

// ScoringEngine computes credit assessments from seven weighted factors.
type ScoringEngine struct {
	cfg ScoringConfig
}

// NewScoringEngine creates an engine bound to an immutable configuration.
func NewScoringEngine(cfg ScoringConfig) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// Score computes the credit assessment. It is deterministic given its inputs
// and never fails: factors that cannot be computed contribute a zero delta
// with an explanatory reason, and the assessment is flagged as degraded.
func (e *ScoringEngine) Score(applicant Applicant, history ApplicantHistory, now time.Time) model.CreditAssessment {
	factors := []model.FactorScore{
		e.scoreAge(applicant, now),
		e.scoreAmount(applicant),
		e.scoreFrequency(applicant),
		e.scoreRepaymentHistory(history),
		e.scoreApplicationTiming(history),
		e.scoreAddress(applicant),
		e.scoreName(applicant),
	}

	score := e.cfg.BaseScore
	degraded := false
	for _, f := range factors {
		score += f.Delta
		if f.Degraded {
			degraded = true
		}
	}
	if score < e.cfg.Floor {
		score = e.cfg.Floor
	}
	if score > e.cfg.Ceiling {
		score = e.cfg.Ceiling
	}

	return model.CreditAssessment{
		Score:      score,
		Grade:      valueobject.GradeFromScore(score),
		RiskLevel:  valueobject.RiskLevelFromScore(score),
		Degraded:   degraded,
		Factors:    factors,
		AssessedAt: now,
	}
}

// scoreAge rates the applicant's age band at application time.
func (e *ScoringEngine) scoreAge(a Applicant, now time.Time) model.FactorScore {
	if a.BirthDate.IsZero() {
		return model.FactorScore{
			Name: "age", Delta: 0, Degraded: true,
			Reason: "birth date unavailable, factor skipped",
		}
	}

	age := yearsBetween(a.BirthDate, now)
	var delta int
	switch {
	case age >= 25 && age <= 45:
		delta = 50
	case age >= 18 && age <= 24:
		delta = 20
	case age >= 46 && age <= 55:
		delta = 40
	case age >= 56 && age <= 65:
		delta = 25
	case age >= 66 && age <= 80:
		delta = 10
	default:
		delta = -50
	}
	return model.FactorScore{
		Name:   "age",
		Delta:  delta,
		Reason: fmt.Sprintf("applicant is %d years old", age),
	}
}

// scoreAmount rates the requested principal: small loans are the safest.
func (e *ScoringEngine) scoreAmount(a Applicant) model.FactorScore {
	amt := a.RequestedAmount
	var delta int
	switch {
	case amt.LessThanOrEqual(decimal.NewFromInt(5_000)):
		delta = 50
	case amt.LessThanOrEqual(decimal.NewFromInt(15_000)):
		delta = 30
	case amt.LessThanOrEqual(decimal.NewFromInt(30_000)):
		delta = 10
	case amt.LessThanOrEqual(decimal.NewFromInt(50_000)):
		delta = -20
	default:
		delta = -50
	}
	return model.FactorScore{
		Name:   "requested_amount",
		Delta:  delta,
		Reason: fmt.Sprintf("requested %s", amt.String()),
	}
}

// scoreFrequency rates the chosen repayment cadence.
func (e *ScoringEngine) scoreFrequency(a Applicant) model.FactorScore {
	var delta int
	switch a.Frequency {
	case valueobject.FrequencyMonthly:
		delta = 30
	case valueobject.FrequencyWeekly:
		delta = 20
	case valueobject.FrequencyDaily:
		delta = 10
	default:
		delta = -20
	}
	return model.FactorScore{
		Name:   "payment_frequency",
		Delta:  delta,
		Reason: fmt.Sprintf("repayment frequency %q", a.Frequency.String()),
	}
}

// scoreRepaymentHistory rates prior completed loans by their on-time ratio.
func (e *ScoringEngine) scoreRepaymentHistory(h ApplicantHistory) model.FactorScore {
	if h.RepaymentErr != nil {
		return model.FactorScore{
			Name: "repayment_history", Delta: 0, Degraded: true,
			Reason: fmt.Sprintf("history lookup failed: %v", h.RepaymentErr),
		}
	}

	stats := h.Repayment
	if stats.CompletedLoans == 0 {
		return model.FactorScore{
			Name:   "repayment_history",
			Delta:  0,
			Reason: "no prior completed loans",
		}
	}
	if !stats.HasDetail || stats.TotalInstallments == 0 {
		return model.FactorScore{
			Name:   "repayment_history",
			Delta:  20,
			Reason: fmt.Sprintf("%d completed loans, no installment detail", stats.CompletedLoans),
		}
	}

	ratio := float64(stats.OnTimeInstallments) / float64(stats.TotalInstallments)
	var delta int
	switch {
	case ratio >= 0.95:
		delta = 60
	case ratio >= 0.85:
		delta = 40
	case ratio >= 0.70:
		delta = 20
	default:
		delta = -40
	}
	return model.FactorScore{
		Name:   "repayment_history",
		Delta:  delta,
		Reason: fmt.Sprintf("on-time ratio %.2f over %d installments", ratio, stats.TotalInstallments),
	}
}

// scoreApplicationTiming penalises rapid resubmission and rewards a quiet week.
func (e *ScoringEngine) scoreApplicationTiming(h ApplicantHistory) model.FactorScore {
	if h.TimingErr != nil {
		return model.FactorScore{
			Name: "application_timing", Delta: 0, Degraded: true,
			Reason: fmt.Sprintf("timing lookup failed: %v", h.TimingErr),
		}
	}

	var delta int
	var reason string
	switch {
	case h.ApplicationsLast24h > 1:
		delta = -30
		reason = fmt.Sprintf("%d applications in the last 24h", h.ApplicationsLast24h)
	case h.ApplicationsLast7d > 2:
		delta = -20
		reason = fmt.Sprintf("%d applications in the last 7 days", h.ApplicationsLast7d)
	case h.ApplicationsLast7d == 0:
		delta = 10
		reason = "no applications in the last 7 days"
	default:
		delta = 0
		reason = fmt.Sprintf("%d applications in the last 7 days", h.ApplicationsLast7d)
	}
	return model.FactorScore{Name: "application_timing", Delta: delta, Reason: reason}
}

// scoreAddress rates the declared address by keyword markers and length.
func (e *ScoringEngine) scoreAddress(a Applicant) model.FactorScore {
	address := strings.ToLower(a.Address)
	delta := 0
	var notes []string

	if containsAny(address, e.cfg.LowRiskAddressKeywords) {
		delta += 20
		notes = append(notes, "commercial/urban marker")
	} else if containsAny(address, e.cfg.HighRiskAddressKeywords) {
		delta -= 10
		notes = append(notes, "high-risk area marker")
	}

	if len([]rune(a.Address)) < e.cfg.ShortAddressRunes {
		delta -= 10
		notes = append(notes, "address too short")
	}

	reason := "no address markers matched"
	if len(notes) > 0 {
		reason = strings.Join(notes, "; ")
	}
	return model.FactorScore{Name: "address_risk", Delta: delta, Reason: reason}
}

// scoreName rejects placeholder names and penalises implausibly short parts.
func (e *ScoringEngine) scoreName(a Applicant) model.FactorScore {
	full := a.FirstName + " " + a.LastName
	if e.cfg.PlaceholderNamePattern != nil && e.cfg.PlaceholderNamePattern.MatchString(full) {
		return model.FactorScore{
			Name:   "name_plausibility",
			Delta:  -30,
			Reason: "name matches a placeholder pattern",
		}
	}
	if len([]rune(a.FirstName)) < 2 || len([]rune(a.LastName)) < 2 {
		return model.FactorScore{
			Name:   "name_plausibility",
			Delta:  -10,
			Reason: "name part shorter than 2 characters",
		}
	}
	return model.FactorScore{
		Name:   "name_plausibility",
		Delta:  0,
		Reason: "name looks plausible",
	}
}

// yearsBetween computes full years elapsed from birth to now.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
