package domain

import "time"

// EvaluationMode identifies which path produced an evaluation result
type EvaluationMode string

const (
	EvaluationModeAI        EvaluationMode = "ai"
	EvaluationModeEmergency EvaluationMode = "emergency"
)

// ScoreBreakdown splits a score across the rubric dimensions
type ScoreBreakdown struct {
	Correctness   int `json:"correctness"`
	Efficiency    int `json:"efficiency"`
	CodeQuality   int `json:"code_quality"`
	BossChallenge int `json:"boss_challenge"`
}

// TestCaseResult is the reported outcome of a single test case
type TestCaseResult struct {
	TestID        string `json:"test_id"`
	Input         string `json:"input"`
	Expected      string `json:"expected"`
	Actual        string `json:"actual"`
	Passed        bool   `json:"passed"`
	ExecutionNote string `json:"execution_note,omitempty"`
}

// ComplexityAnalysis describes the asymptotic behavior of a submission
type ComplexityAnalysis struct {
	TimeComplexity  string `json:"time_complexity,omitempty"`
	SpaceComplexity string `json:"space_complexity,omitempty"`
	IsOptimal       bool   `json:"is_optimal,omitempty"`
}

// EvaluationResult is the outcome of scoring one submission
type EvaluationResult struct {
	Score              int                `json:"score"`
	IsValid            bool               `json:"is_valid"`
	Feedback           string             `json:"feedback"`
	Strengths          []string           `json:"strengths,omitempty"`
	Improvements       []string           `json:"improvements,omitempty"`
	Breakdown          ScoreBreakdown     `json:"breakdown"`
	TestCaseResults    []TestCaseResult   `json:"test_case_results,omitempty"`
	ComplexityAnalysis ComplexityAnalysis `json:"complexity_analysis,omitempty"`
	Mode               EvaluationMode     `json:"mode"`
	ServiceError       bool               `json:"service_error,omitempty"`
	EvaluatedAt        time.Time          `json:"evaluated_at"`
}

// ClampScore bounds a raw score to the valid 0-100 range
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Submission is a user's solution attempt against a battle
type Submission struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}
