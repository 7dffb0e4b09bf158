package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gitforge/bossquest/internal/domain"
)

// challengePayload mirrors the JSON object the reasoning service returns.
// Field names are the camelCase keys from the response contract.
type challengePayload struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Theme            string `json:"theme"`
	Duration         string `json:"duration"`
	Difficulty       string `json:"difficulty"`
	ProblemStatement struct {
		Description      string            `json:"description"`
		BossStory        string            `json:"bossStory"`
		Examples         []examplePayload  `json:"examples"`
		Constraints      []string          `json:"constraints"`
		EdgeCases        []string          `json:"edgeCases"`
		BossRequirements []string          `json:"bossRequirements"`
		TestCases        []testCasePayload `json:"testCases"`
	} `json:"problemStatement"`
	StarterCode struct {
		Language string `json:"language"`
		Code     string `json:"code"`
	} `json:"starterCode"`
	Solution struct {
		Code            string `json:"code"`
		Explanation     string `json:"explanation"`
		TimeComplexity  string `json:"timeComplexity"`
		SpaceComplexity string `json:"spaceComplexity"`
	} `json:"solution"`
	BossCharacteristics struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Weaknesses  []string `json:"weaknesses"`
		Lore        string   `json:"lore"`
	} `json:"bossCharacteristics"`
}

type examplePayload struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

// testCasePayload tolerates models answering with either expectedOutput or output
type testCasePayload struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Output         string `json:"output"`
	Description    string `json:"description"`
}

func (t testCasePayload) expected() string {
	if t.ExpectedOutput != "" {
		return t.ExpectedOutput
	}
	return t.Output
}

// decodePayload parses an extracted JSON object into a challenge payload
func decodePayload(raw string) (*challengePayload, error) {
	var p challengePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode challenge payload: %w", err)
	}
	return &p, nil
}

// validatePayload checks the structural completeness of a generated challenge.
// Mirrors what the lifecycle needs downstream: presentable statement, enough
// test cases to evaluate against, and a real reference solution.
func validatePayload(p *challengePayload) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("missing required field: title")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("missing required field: description")
	}
	if strings.TrimSpace(p.ProblemStatement.Description) == "" {
		return fmt.Errorf("incomplete problem statement structure")
	}
	if len(p.ProblemStatement.Examples) == 0 {
		return fmt.Errorf("incomplete problem statement structure: no examples")
	}
	for i, ex := range p.ProblemStatement.Examples {
		if ex.Input == "" || ex.Output == "" || ex.Explanation == "" {
			return fmt.Errorf("invalid example structure at index %d", i)
		}
	}
	if len(p.ProblemStatement.TestCases) < minTestCases {
		return fmt.Errorf("insufficient test cases (minimum %d required)", minTestCases)
	}
	if len(strings.TrimSpace(p.Solution.Code)) < minSolutionLength {
		return fmt.Errorf("solution code is missing or too short")
	}
	return nil
}

// toChallenge converts a validated payload into the domain challenge
func toChallenge(p *challengePayload, theme string) *domain.Challenge {
	ps := domain.ProblemStatement{
		Description:      p.ProblemStatement.Description,
		BossStory:        p.ProblemStatement.BossStory,
		Constraints:      p.ProblemStatement.Constraints,
		EdgeCases:        p.ProblemStatement.EdgeCases,
		BossRequirements: p.ProblemStatement.BossRequirements,
	}
	for _, ex := range p.ProblemStatement.Examples {
		ps.Examples = append(ps.Examples, domain.Example{
			Input:       ex.Input,
			Output:      ex.Output,
			Explanation: ex.Explanation,
		})
	}
	for _, tc := range p.ProblemStatement.TestCases {
		ps.TestCases = append(ps.TestCases, domain.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.expected(),
			Description:    tc.Description,
		})
	}

	if p.Theme != "" {
		theme = p.Theme
	}

	challenge := &domain.Challenge{
		Title:            p.Title,
		Description:      p.Description,
		Difficulty:       p.Difficulty,
		EstimatedTime:    p.Duration,
		ProblemStatement: ps,
		Solution: domain.Solution{
			Code:        p.Solution.Code,
			Explanation: p.Solution.Explanation,
			Approach:    p.Solution.TimeComplexity,
		},
		EvaluationCriteria: domain.DefaultEvaluationCriteria(),
		BossCharacteristics: domain.BossCharacteristics{
			Theme:       theme,
			Name:        p.BossCharacteristics.Name,
			Personality: firstNonEmpty(p.BossCharacteristics.Lore, p.BossCharacteristics.Description),
		},
		Source: domain.ChallengeSourceGenerated,
	}
	if len(p.BossCharacteristics.Weaknesses) > 0 {
		challenge.BossCharacteristics.WeakSpot = p.BossCharacteristics.Weaknesses[0]
	}
	if p.StarterCode.Code != "" {
		lang := p.StarterCode.Language
		if lang == "" {
			lang = "javascript"
		}
		challenge.StarterCode = map[string]string{lang: p.StarterCode.Code}
	}
	return challenge
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
