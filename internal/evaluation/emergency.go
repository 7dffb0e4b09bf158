package evaluation

import (
	"strings"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
)

// Emergency scoring constants. A submission that survives the structural
// checks gets a minimal score; it can never win a battle because the result
// stays invalid and flagged as emergency mode.
const (
	emergencyScore              = 25
	emergencyCorrectnessPoints  = 10
	emergencyEfficiencyPoints   = 5
	emergencyCodeQualityPoints  = 5
	emergencyBossChallengePoint = 5
)

// EmergencyValidator applies structural checks to a submission when the
// reasoning service is unavailable.
type EmergencyValidator struct{}

// NewEmergencyValidator returns the degraded-mode validator.
func NewEmergencyValidator() *EmergencyValidator {
	return &EmergencyValidator{}
}

// SyntaxCheck is the outcome of the structural code checks.
type SyntaxCheck struct {
	IsValid bool
	Errors  []string
}

// ValidateSyntax runs basic structural checks: a function definition, a
// return statement, and balanced braces and parentheses.
func (v *EmergencyValidator) ValidateSyntax(code string) SyntaxCheck {
	var errs []string

	if !strings.Contains(code, "function") && !strings.Contains(code, "=>") &&
		!strings.Contains(code, "def ") && !strings.Contains(code, "func ") {
		errs = append(errs, "No function definition found")
	}
	if !strings.Contains(code, "return") {
		errs = append(errs, "No return statement found")
	}
	if strings.Count(code, "{") != strings.Count(code, "}") {
		errs = append(errs, "Mismatched braces")
	}
	if strings.Count(code, "(") != strings.Count(code, ")") {
		errs = append(errs, "Mismatched parentheses")
	}

	return SyntaxCheck{IsValid: len(errs) == 0, Errors: errs}
}

// Evaluate produces a degraded-mode evaluation result. Structurally broken
// code scores zero; plausible code gets the minimal emergency score. Either
// way the result is marked invalid so it can never defeat the boss.
func (v *EmergencyValidator) Evaluate(submission domain.Submission) *domain.EvaluationResult {
	check := v.ValidateSyntax(submission.Code)

	if !check.IsValid {
		return &domain.EvaluationResult{
			Score:        0,
			IsValid:      false,
			Feedback:     "EMERGENCY VALIDATION: Solution has syntax errors: " + strings.Join(check.Errors, ", ") + ". Please retry when the evaluation service is available for full validation.",
			Improvements: []string{"Fix syntax errors", "Retry when the evaluation service is available"},
			Mode:         domain.EvaluationModeEmergency,
			EvaluatedAt:  time.Now(),
		}
	}

	return &domain.EvaluationResult{
		Score:     emergencyScore,
		IsValid:   false,
		Feedback:  "EMERGENCY VALIDATION: Solution appears syntactically correct but could not be fully validated because the evaluation service is unavailable. Please resubmit when service is restored for complete evaluation.",
		Strengths: []string{"Syntactically correct code"},
		Improvements: []string{
			"Resubmit for full validation when the evaluation service is available",
		},
		Breakdown: domain.ScoreBreakdown{
			Correctness:   emergencyCorrectnessPoints,
			Efficiency:    emergencyEfficiencyPoints,
			CodeQuality:   emergencyCodeQualityPoints,
			BossChallenge: emergencyBossChallengePoint,
		},
		Mode:        domain.EvaluationModeEmergency,
		EvaluatedAt: time.Now(),
	}
}
