package service

import (
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Approval Decision Policy
// ---------------------------------------------------------------------------

// Decision is the policy outcome for one assessed application.
type Decision string

const (
	DecisionApprove      Decision = "approve"
	DecisionReject       Decision = "reject"
	DecisionManualReview Decision = "manual_review"
)

// PolicyConfig gates optional policy behaviour.
type PolicyConfig struct {
	// AutoApproveEnabled switches on score-based automatic approval. The
	// deployed policy keeps it off: every non-rejected application goes to
	// manual review.
	AutoApproveEnabled bool
	// AutoApproveMinScore is the lowest score eligible for automatic
	// approval when the flag is on.
	AutoApproveMinScore int
}

// DefaultPolicyConfig returns the deployed policy configuration.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		AutoApproveEnabled:  false,
		AutoApproveMinScore: 700,
	}
}

// ApprovalPolicy is the fixed decision table, evaluated in order with the
// first match winning. It is side-effect-free; persisting the outcome is the
// caller's job.
type ApprovalPolicy struct {
	cfg PolicyConfig
}

// NewApprovalPolicy creates a policy bound to its configuration.
func NewApprovalPolicy(cfg PolicyConfig) *ApprovalPolicy {
	return &ApprovalPolicy{cfg: cfg}
}

// Decide maps an assessment to exactly one decision.
func (p *ApprovalPolicy) Decide(riskLevel valueobject.RiskLevel, score int) Decision {
	if riskLevel == valueobject.RiskLevelVeryHigh {
		return DecisionReject
	}
	if p.cfg.AutoApproveEnabled && score >= p.cfg.AutoApproveMinScore {
		return DecisionApprove
	}
	return DecisionManualReview
}
