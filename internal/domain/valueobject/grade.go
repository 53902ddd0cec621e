package valueobject

// Grade is the letter grade assigned to a credit score.
type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// GradeFromScore maps a credit score (300-850) to its letter grade.
// Thresholds are inclusive lower bounds.
func GradeFromScore(score int) Grade {
	switch {
	case score >= 750:
		return GradeAPlus
	case score >= 700:
		return GradeA
	case score >= 650:
		return GradeBPlus
	case score >= 600:
		return GradeB
	case score >= 550:
		return GradeBMinus
	case score >= 500:
		return GradeCPlus
	case score >= 450:
		return GradeC
	case score >= 400:
		return GradeCMinus
	case score >= 350:
		return GradeD
	default:
		return GradeF
	}
}
