package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/model"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/valueobject"
)

const borrowerColumns = `
	id, line_user_id, first_name, last_name, national_id, birth_date, address,
	requested_amount, frequency,
	score, grade, risk_level, source, degraded, factors, assessed_at,
	principal, annual_rate, term_months, installments, installment_amount,
	total_payable, due_date,
	status, decision_reason, paid_amount, paid_on_time, paid_total,
	overdue_days, penalty_accrued, version, created_at, updated_at`

// BorrowerRepo implements port.BorrowerRepository.
type BorrowerRepo struct {
	pool *pgxpool.Pool
}

// NewBorrowerRepo creates a new repository backed by PostgreSQL.
func NewBorrowerRepo(pool *pgxpool.Pool) *BorrowerRepo {
	return &BorrowerRepo{pool: pool}
}

// Save persists a borrower record (upsert by ID with optimistic locking).
func (r *BorrowerRepo) Save(ctx context.Context, b model.Borrower) error {
	var (
		score                    *int
		grade, riskLevel, source *string
		degraded                 *bool
		factors                  []byte
		assessedAt               *time.Time
		principal, annualRate    decimal.NullDecimal
		termMonths, installments *int
		installmentAmount        decimal.NullDecimal
		totalPayable             decimal.NullDecimal
		dueDate                  *time.Time
	)
	if a := b.Assessment(); a != nil {
		gradeStr, riskStr := string(a.Grade), a.RiskLevel.String()
		score, grade, riskLevel = &a.Score, &gradeStr, &riskStr
		source, degraded, assessedAt = &a.Source, &a.Degraded, &a.AssessedAt

		var err error
		factors, err = json.Marshal(a.Factors)
		if err != nil {
			return fmt.Errorf("marshal factors: %w", err)
		}
	}
	if t := b.Terms(); t != nil {
		principal = decimal.NewNullDecimal(t.Principal)
		annualRate = decimal.NewNullDecimal(t.AnnualRate)
		termMonths, installments = &t.TermMonths, &t.Installments
		installmentAmount = decimal.NewNullDecimal(t.InstallmentAmount)
		totalPayable = decimal.NewNullDecimal(t.TotalPayable)
		dueDate = &t.DueDate
	}

	query := `
		INSERT INTO borrowers (` + borrowerColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,
		        $17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33)
		ON CONFLICT (id) DO UPDATE SET
			score              = EXCLUDED.score,
			grade              = EXCLUDED.grade,
			risk_level         = EXCLUDED.risk_level,
			source             = EXCLUDED.source,
			degraded           = EXCLUDED.degraded,
			factors            = EXCLUDED.factors,
			assessed_at        = EXCLUDED.assessed_at,
			principal          = EXCLUDED.principal,
			annual_rate        = EXCLUDED.annual_rate,
			term_months        = EXCLUDED.term_months,
			installments       = EXCLUDED.installments,
			installment_amount = EXCLUDED.installment_amount,
			total_payable      = EXCLUDED.total_payable,
			due_date           = EXCLUDED.due_date,
			status             = EXCLUDED.status,
			decision_reason    = EXCLUDED.decision_reason,
			paid_amount        = EXCLUDED.paid_amount,
			paid_on_time       = EXCLUDED.paid_on_time,
			paid_total         = EXCLUDED.paid_total,
			overdue_days       = EXCLUDED.overdue_days,
			penalty_accrued    = EXCLUDED.penalty_accrued,
			version            = borrowers.version + 1,
			updated_at         = EXCLUDED.updated_at
		WHERE borrowers.version = $31
	`
	tag, err := r.pool.Exec(ctx, query,
		b.ID(), b.LineUserID(), b.FirstName(), b.LastName(), b.NationalID(),
		b.BirthDate(), b.Address(), b.RequestedAmount(), b.Frequency().String(),
		score, grade, riskLevel, source, degraded, factors, assessedAt,
		principal, annualRate, termMonths, installments, installmentAmount,
		totalPayable, dueDate,
		b.Status().String(), b.DecisionReason(), b.PaidAmount(),
		b.PaidOnTime(), b.PaidTotal(), b.OverdueDays(), b.PenaltyAccrued(),
		b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save borrower: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on borrower")
	}
	return nil
}

// FindByID retrieves a single borrower record.
func (r *BorrowerRepo) FindByID(ctx context.Context, id string) (model.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE id = $1`
	b, err := scanBorrower(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Borrower{}, apperror.ErrNotFound
	}
	return b, err
}

// FindOpenByIdentity retrieves pending/approved records matching the national
// ID or the line user ID.
func (r *BorrowerRepo) FindOpenByIdentity(ctx context.Context, nationalID, lineUserID string) ([]model.Borrower, error) {
	query := `
		SELECT ` + borrowerColumns + `
		FROM borrowers
		WHERE (national_id = $1 OR line_user_id = $2)
		  AND status IN ('pending', 'approved')
		ORDER BY created_at DESC
	`
	return r.scanMany(ctx, query, nationalID, lineUserID)
}

// CountBySubjectCreatedSince counts records the subject created at or after
// the given instant.
func (r *BorrowerRepo) CountBySubjectCreatedSince(ctx context.Context, lineUserID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM borrowers WHERE line_user_id = $1 AND created_at >= $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, lineUserID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count borrowers: %w", err)
	}
	return count, nil
}

// ListByStatus retrieves all records in the given status.
func (r *BorrowerRepo) ListByStatus(ctx context.Context, status valueobject.BorrowerStatus) ([]model.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE status = $1 ORDER BY created_at`
	return r.scanMany(ctx, query, status.String())
}

// RepaymentStats aggregates the applicant's completed loans. The per-record
// installment counters double as the granular history: when every completed
// loan predates counter tracking the totals are zero and HasDetail is false.
func (r *BorrowerRepo) RepaymentStats(ctx context.Context, nationalID string) (model.RepaymentStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(paid_total), 0),
		       COALESCE(SUM(paid_on_time), 0)
		FROM borrowers
		WHERE national_id = $1 AND status = 'completed'
	`
	var stats model.RepaymentStats
	err := r.pool.QueryRow(ctx, query, nationalID).Scan(
		&stats.CompletedLoans, &stats.TotalInstallments, &stats.OnTimeInstallments,
	)
	if err != nil {
		return model.RepaymentStats{}, fmt.Errorf("repayment stats: %w", err)
	}
	stats.HasDetail = stats.TotalInstallments > 0
	return stats, nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func (r *BorrowerRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Borrower, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query borrowers: %w", err)
	}
	defer rows.Close()

	var result []model.Borrower
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func scanBorrower(s scannable) (model.Borrower, error) {
	var (
		id, lineUserID, firstName, lastName, nationalID string
		birthDate                                       time.Time
		address                                         string
		requestedAmount                                 decimal.Decimal
		frequencyStr                                    string

		score                    *int
		grade, riskLevel, source *string
		degraded                 *bool
		factorsRaw               []byte
		assessedAt               *time.Time

		principal, annualRate    decimal.NullDecimal
		termMonths, installments *int
		installmentAmount        decimal.NullDecimal
		totalPayable             decimal.NullDecimal
		dueDate                  *time.Time

		statusStr, decisionReason string
		paidAmount                decimal.Decimal
		paidOnTime, paidTotal     int
		overdueDays               int
		penaltyAccrued            decimal.Decimal
		version                   int
		createdAt, updatedAt      time.Time
	)

	err := s.Scan(
		&id, &lineUserID, &firstName, &lastName, &nationalID, &birthDate, &address,
		&requestedAmount, &frequencyStr,
		&score, &grade, &riskLevel, &source, &degraded, &factorsRaw, &assessedAt,
		&principal, &annualRate, &termMonths, &installments, &installmentAmount,
		&totalPayable, &dueDate,
		&statusStr, &decisionReason, &paidAmount, &paidOnTime, &paidTotal,
		&overdueDays, &penaltyAccrued, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Borrower{}, fmt.Errorf("scan borrower: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(frequencyStr)
	if err != nil {
		return model.Borrower{}, fmt.Errorf("parse frequency: %w", err)
	}
	status, err := valueobject.NewBorrowerStatus(statusStr)
	if err != nil {
		return model.Borrower{}, fmt.Errorf("parse status: %w", err)
	}

	var assessment *model.CreditAssessment
	if score != nil {
		risk, err := valueobject.RiskLevelFromString(*riskLevel)
		if err != nil {
			return model.Borrower{}, fmt.Errorf("parse risk level: %w", err)
		}
		var factors []model.FactorScore
		if len(factorsRaw) > 0 {
			if err := json.Unmarshal(factorsRaw, &factors); err != nil {
				return model.Borrower{}, fmt.Errorf("unmarshal factors: %w", err)
			}
		}
		assessment = &model.CreditAssessment{
			Score:      *score,
			Grade:      valueobject.Grade(*grade),
			RiskLevel:  risk,
			Source:     *source,
			Degraded:   *degraded,
			Factors:    factors,
			AssessedAt: *assessedAt,
		}
	}

	var terms *model.LoanTerms
	if principal.Valid {
		terms = &model.LoanTerms{
			Principal:         principal.Decimal,
			AnnualRate:        annualRate.Decimal,
			TermMonths:        *termMonths,
			Installments:      *installments,
			InstallmentAmount: installmentAmount.Decimal,
			TotalPayable:      totalPayable.Decimal,
			DueDate:           *dueDate,
		}
	}

	return model.ReconstructBorrower(
		id, lineUserID, firstName, lastName, nationalID, birthDate, address,
		requestedAmount, frequency, assessment, terms, status, decisionReason,
		paidAmount, paidOnTime, paidTotal, overdueDays, penaltyAccrued,
		version, createdAt, updatedAt,
	), nil
}
