package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/application/dto"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/service"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

// SubmitApplicationUseCase runs the full intake pipeline: input validation,
// ID checksum, external identity verification (with local fallback), the
// duplicate/blacklist guard, scoring, terms calculation and the approval
// policy.
type SubmitApplicationUseCase struct {
	borrowers port.BorrowerRepository
	publisher port.EventPublisher
	verifier  port.IdentityVerifier
	guard     *service.IntakeGuard
	scorer    *service.ScoringEngine
	terms     *service.TermsCalculator
	policy    *service.ApprovalPolicy
	logger    *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	borrowers port.BorrowerRepository,
	publisher port.EventPublisher,
	verifier port.IdentityVerifier,
	guard *service.IntakeGuard,
	scorer *service.ScoringEngine,
	terms *service.TermsCalculator,
	policy *service.ApprovalPolicy,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		borrowers: borrowers,
		publisher: publisher,
		verifier:  verifier,
		guard:     guard,
		scorer:    scorer,
		terms:     terms,
		policy:    policy,
		logger:    logger,
	}
}

// SubmitApplicationResponse is the submission outcome: the persisted record
// plus the policy decision that was applied to it.
type SubmitApplicationResponse struct {
	Borrower dto.BorrowerResponse `json:"borrower"`
	Decision string               `json:"decision"`
}

// Execute processes one application end to end.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (SubmitApplicationResponse, error) {
	now := time.Now().UTC()

	// 1. Syntactic validation.
	frequency, err := valueobject.NewPaymentFrequency(req.Frequency)
	if err != nil {
		return SubmitApplicationResponse{}, apperror.NewValidationError("frequency", err.Error())
	}
	if err := service.ValidateIDCard(req.NationalID); err != nil {
		return SubmitApplicationResponse{}, err
	}

	// 2. External identity verification. An unreachable or failing provider
	// is not an intake failure: the checksum already passed, so the pipeline
	// continues on the fallback path and the assessment records it.
	source := model.AssessmentSourceFull
	result, err := uc.verifier.Verify(ctx, req.NationalID)
	switch {
	case err != nil:
		uc.logger.Warn("identity verification unavailable, using checksum fallback",
			"line_user_id", req.LineUserID, "error", err)
		source = model.AssessmentSourceChecksumFallback
	case !result.Valid:
		return SubmitApplicationResponse{}, apperror.NewValidationError("national_id",
			fmt.Sprintf("identity verification failed: %s", result.Message))
	}

	// 3. Duplicate / blacklist guard.
	if err := uc.guard.Check(ctx, req.NationalID, req.LineUserID, now); err != nil {
		if apperror.IsRejection(err) {
			uc.logger.Warn("application rejected by intake guard",
				"line_user_id", req.LineUserID, "reason", err.Error())
		}
		return SubmitApplicationResponse{}, err
	}

	// 4. Create the aggregate.
	borrower, err := model.NewBorrower(
		req.LineUserID, req.FirstName, req.LastName, req.NationalID,
		req.BirthDate, req.Address, req.RequestedAmount, frequency, now,
	)
	if err != nil {
		return SubmitApplicationResponse{}, apperror.NewValidationError("application", err.Error())
	}

	// 5. Assemble history, then score. Lookup failures degrade the affected
	// factor instead of failing the submission.
	history := uc.collectHistory(ctx, req.LineUserID, req.NationalID, now)
	assessment := uc.scorer.Score(service.Applicant{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BirthDate:       req.BirthDate,
		Address:         req.Address,
		RequestedAmount: req.RequestedAmount,
		Frequency:       frequency,
	}, history, now)
	assessment.Source = source

	// 6. Calculate terms.
	terms := uc.terms.Calculate(req.RequestedAmount, frequency, assessment.Score, true, now)

	borrower, err = borrower.Assess(assessment, terms, now)
	if err != nil {
		return SubmitApplicationResponse{}, fmt.Errorf("write assessment: %w", err)
	}

	// 7. Apply the approval policy. Manual review leaves the record pending
	// for an admin decision.
	decision := uc.policy.Decide(assessment.RiskLevel, assessment.Score)
	switch decision {
	case service.DecisionReject:
		borrower, err = borrower.Reject("risk level too high for lending", "policy", now)
	case service.DecisionApprove:
		borrower, err = borrower.Approve("auto-approved by score", "policy", now)
	}
	if err != nil {
		return SubmitApplicationResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	// 8. Persist and publish.
	if err := uc.borrowers.Save(ctx, borrower); err != nil {
		return SubmitApplicationResponse{}, apperror.NewSystemError("submit_application.save", err)
	}
	if err := uc.publisher.Publish(ctx, borrower.DomainEvents()...); err != nil {
		return SubmitApplicationResponse{}, apperror.NewSystemError("submit_application.publish", err)
	}

	uc.logger.Info("application processed",
		"borrower_id", borrower.ID(),
		"score", assessment.Score,
		"risk_level", assessment.RiskLevel.String(),
		"decision", string(decision),
		"degraded", assessment.Degraded)

	return SubmitApplicationResponse{
		Borrower: dto.ToBorrowerResponse(borrower),
		Decision: string(decision),
	}, nil
}

// collectHistory gathers the repayment and timing inputs for scoring. Each
// lookup failure is carried into the history so only its factor degrades.
func (uc *SubmitApplicationUseCase) collectHistory(ctx context.Context, lineUserID, nationalID string, now time.Time) service.ApplicantHistory {
	history := service.ApplicantHistory{}

	history.Repayment, history.RepaymentErr = uc.borrowers.RepaymentStats(ctx, nationalID)

	last24h, err := uc.borrowers.CountBySubjectCreatedSince(ctx, lineUserID, now.Add(-24*time.Hour))
	if err != nil {
		history.TimingErr = err
		return history
	}
	last7d, err := uc.borrowers.CountBySubjectCreatedSince(ctx, lineUserID, now.AddDate(0, 0, -7))
	if err != nil {
		history.TimingErr = err
		return history
	}
	history.ApplicationsLast24h = last24h
	history.ApplicationsLast7d = last7d
	return history
}
