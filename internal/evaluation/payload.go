package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/gitforge/bossquest/internal/domain"
)

// validationPayload mirrors the stage-one JSON response.
type validationPayload struct {
	IsValid          bool              `json:"isValid"`
	ExecutionResults []executionResult `json:"executionResults"`
	TestsPassed      int               `json:"testsPassed"`
	TotalTests       int               `json:"totalTests"`
	Errors           []string          `json:"errors"`
	Feedback         string            `json:"feedback"`
}

type executionResult struct {
	TestCase       int    `json:"testCase"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	Passed         bool   `json:"passed"`
	Error          string `json:"error"`
}

// scoringPayload mirrors the stage-two JSON response. Score is a pointer so a
// missing field can be told apart from an explicit zero.
type scoringPayload struct {
	Score              *int     `json:"score"`
	Correctness        int      `json:"correctness"`
	Efficiency         int      `json:"efficiency"`
	CodeQuality        int      `json:"codeQuality"`
	BossChallenge      int      `json:"bossChallenge"`
	Feedback           string   `json:"feedback"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	ComplexityAnalysis struct {
		TimeComplexity  string `json:"timeComplexity"`
		SpaceComplexity string `json:"spaceComplexity"`
		IsOptimal       bool   `json:"isOptimal"`
	} `json:"complexityAnalysis"`
}

func decodeValidationPayload(raw string) (*validationPayload, error) {
	var p validationPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode validation payload: %w", err)
	}
	return &p, nil
}

func decodeScoringPayload(raw string) (*scoringPayload, error) {
	var p scoringPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode scoring payload: %w", err)
	}
	return &p, nil
}

// resolveScore extracts the overall score, falling back to summing the
// breakdown when the model omitted the top-level field.
func (p *scoringPayload) resolveScore() (int, error) {
	if p.Score != nil {
		return domain.ClampScore(*p.Score), nil
	}
	if p.Correctness > 0 || p.Efficiency > 0 || p.CodeQuality > 0 || p.BossChallenge > 0 {
		return domain.ClampScore(p.Correctness + p.Efficiency + p.CodeQuality + p.BossChallenge), nil
	}
	return 0, fmt.Errorf("unable to parse evaluation score")
}

// testCaseResults converts execution results into domain form.
func (p *validationPayload) testCaseResults() []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, 0, len(p.ExecutionResults))
	for _, r := range p.ExecutionResults {
		results = append(results, domain.TestCaseResult{
			TestID:        fmt.Sprintf("test_%d", r.TestCase),
			Input:         r.Input,
			Expected:      r.ExpectedOutput,
			Actual:        r.ActualOutput,
			Passed:        r.Passed,
			ExecutionNote: r.Error,
		})
	}
	return results
}
