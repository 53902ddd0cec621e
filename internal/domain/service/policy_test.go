package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

func TestApprovalPolicy_Decide(t *testing.T) {
	t.Run("very high risk is rejected", func(t *testing.T) {
		policy := NewApprovalPolicy(DefaultPolicyConfig())
		assert.Equal(t, DecisionReject, policy.Decide(valueobject.RiskLevelVeryHigh, 420))
	})

	t.Run("everything else goes to manual review", func(t *testing.T) {
		policy := NewApprovalPolicy(DefaultPolicyConfig())
		for _, level := range []valueobject.RiskLevel{
			valueobject.RiskLevelLow, valueobject.RiskLevelMedium, valueobject.RiskLevelHigh,
		} {
			assert.Equal(t, DecisionManualReview, policy.Decide(level, 820), "level %s", level.String())
		}
	})

	t.Run("auto-approval stays off by default", func(t *testing.T) {
		policy := NewApprovalPolicy(DefaultPolicyConfig())
		assert.Equal(t, DecisionManualReview, policy.Decide(valueobject.RiskLevelLow, 850))
	})

	t.Run("auto-approval honours the flag and the threshold", func(t *testing.T) {
		policy := NewApprovalPolicy(PolicyConfig{AutoApproveEnabled: true, AutoApproveMinScore: 700})

		assert.Equal(t, DecisionApprove, policy.Decide(valueobject.RiskLevelLow, 720))
		assert.Equal(t, DecisionManualReview, policy.Decide(valueobject.RiskLevelMedium, 650))
		// Rejection still wins over the flag.
		assert.Equal(t, DecisionReject, policy.Decide(valueobject.RiskLevelVeryHigh, 720))
	})
}
