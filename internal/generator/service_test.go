package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/reasoning"
)

// scriptedClient returns canned responses in sequence.
type scriptedClient struct {
	responses []scriptedResponse
	prompts   []string
}

type scriptedResponse struct {
	text string
	err  error
}

func (c *scriptedClient) Complete(_ context.Context, prompt string) (string, error) {
	idx := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	r := c.responses[idx]
	return r.text, r.err
}

const validChallengeJSON = `{
  "title": "The Dragon's Ledger",
  "description": "Balance the ancient dragon's hoard before it wakes.",
  "theme": "ancient-dragon",
  "duration": "3-4 hours",
  "difficulty": "Medium-Hard",
  "problemStatement": {
    "description": "Given a list of hoard transactions, find the largest balanced window.",
    "bossStory": "The dragon stirs when its ledger is wrong.",
    "examples": [
      {"input": "[1, -1, 2]", "output": "2", "explanation": "The window [1, -1] balances to zero."}
    ],
    "constraints": ["1 <= n <= 1000"],
    "edgeCases": ["empty ledger"],
    "bossRequirements": ["O(n) preferred"],
    "testCases": [
      {"input": "[1, -1, 2]", "expectedOutput": "2", "description": "basic"},
      {"input": "[0]", "expectedOutput": "1"},
      {"input": "[1, 2, -3]", "output": "3", "description": "full window"}
    ]
  },
  "starterCode": {"language": "javascript", "code": "function solveBoss(input) {}"},
  "solution": {
    "code": "function solveBoss(input) { const arr = JSON.parse(input); /* prefix sums over the ledger */ return answer; }",
    "explanation": "Prefix sums with first-seen index map.",
    "timeComplexity": "O(n)",
    "spaceComplexity": "O(n)"
  },
  "bossCharacteristics": {
    "name": "Aurixan the Gold-Counter",
    "description": "A meticulous wyrm",
    "weaknesses": ["prefix sums"],
    "lore": "Aurixan counts every coin."
  }
}`

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Username:            "alice",
		Level:               domain.LevelExplorer,
		Languages:           []string{"javascript", "go"},
		FocusAreas:          []string{"algorithms"},
		CompletedChallenges: 12,
	}
}

func TestGenerate_Success(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{text: "Here is your battle:\n```json\n" + validChallengeJSON + "\n```"},
	}}
	svc := NewServiceWithSeed(client, 1)

	challenge := svc.Generate(context.Background(), testProfile(), domain.LevelBuilder)

	require.NotNil(t, challenge)
	assert.Equal(t, "The Dragon's Ledger", challenge.Title)
	assert.Equal(t, domain.ChallengeSourceGenerated, challenge.Source)
	assert.Equal(t, "ancient-dragon", challenge.BossCharacteristics.Theme)
	assert.Len(t, client.prompts, 1, "valid first response needs no retry")
}

func TestGenerate_NormalizesTestCases(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{{text: validChallengeJSON}}}
	svc := NewServiceWithSeed(client, 1)

	challenge := svc.Generate(context.Background(), testProfile(), domain.LevelBuilder)

	require.Len(t, challenge.ProblemStatement.TestCases, 3)
	for i, tc := range challenge.ProblemStatement.TestCases {
		assert.Equal(t, testID(i), tc.TestID)
		assert.NotEmpty(t, tc.Description)
		assert.NotEmpty(t, tc.ExpectedOutput, "output alias must be honored")
	}
	// Second test case had no description; it gets the default
	assert.Equal(t, "Test case 2", challenge.ProblemStatement.TestCases[1].Description)
}

func TestGenerate_FillsPersonalization(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{{text: validChallengeJSON}}}
	svc := NewServiceWithSeed(client, 1)
	profile := testProfile()

	challenge := svc.Generate(context.Background(), profile, domain.LevelBuilder)

	assert.Equal(t, profile.Languages, challenge.PersonalizedElements.BasedOnLanguages)
	assert.Equal(t, profile.FocusAreas, challenge.PersonalizedElements.BasedOnFocusAreas)
	assert.NotEmpty(t, challenge.PersonalizedElements.DifficultyReason)
}

func TestGenerate_RetriesOnInvalidStructure(t *testing.T) {
	// First response parses but is missing a solution; second is complete.
	invalid := `{"title": "Broken", "description": "incomplete battle"}`
	client := &scriptedClient{responses: []scriptedResponse{
		{text: invalid},
		{text: validChallengeJSON},
	}}
	svc := NewServiceWithSeed(client, 1)

	challenge := svc.Generate(context.Background(), testProfile(), domain.LevelBuilder)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "RETRY", "second attempt must use the enhanced prompt")
	assert.Equal(t, domain.ChallengeSourceGenerated, challenge.Source)
}

func TestGenerate_FallsBackWhenRetryFails(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{text: "no json here"},
		{text: "still no json"},
	}}
	svc := NewServiceWithSeed(client, 1)

	challenge := svc.Generate(context.Background(), testProfile(), domain.LevelCraftsman)

	require.NotNil(t, challenge)
	assert.Equal(t, domain.ChallengeSourceFallback, challenge.Source)
	assert.Contains(t, challenge.Title, domain.LevelCraftsman.Info().Name)
	assert.Len(t, challenge.ProblemStatement.TestCases, 5)
}

func TestGenerate_FallsBackOnServiceError(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{err: reasoning.ErrTimeout},
	}}
	svc := NewServiceWithSeed(client, 1)

	challenge := svc.Generate(context.Background(), testProfile(), domain.LevelBuilder)

	require.NotNil(t, challenge, "generation must always produce a challenge")
	assert.Equal(t, domain.ChallengeSourceFallback, challenge.Source)
}

func TestValidatePayload(t *testing.T) {
	valid := func(t *testing.T) *challengePayload {
		t.Helper()
		p, err := decodePayload(validChallengeJSON)
		require.NoError(t, err)
		return p
	}

	t.Run("accepts complete payload", func(t *testing.T) {
		assert.NoError(t, validatePayload(valid(t)))
	})

	t.Run("rejects missing title", func(t *testing.T) {
		p := valid(t)
		p.Title = "  "
		assert.ErrorContains(t, validatePayload(p), "title")
	})

	t.Run("rejects missing problem description", func(t *testing.T) {
		p := valid(t)
		p.ProblemStatement.Description = ""
		assert.ErrorContains(t, validatePayload(p), "problem statement")
	})

	t.Run("rejects incomplete example", func(t *testing.T) {
		p := valid(t)
		p.ProblemStatement.Examples[0].Explanation = ""
		assert.ErrorContains(t, validatePayload(p), "example")
	})

	t.Run("rejects too few test cases", func(t *testing.T) {
		p := valid(t)
		p.ProblemStatement.TestCases = p.ProblemStatement.TestCases[:2]
		assert.ErrorContains(t, validatePayload(p), "test cases")
	})

	t.Run("rejects short solution", func(t *testing.T) {
		p := valid(t)
		p.Solution.Code = "x = 1"
		assert.ErrorContains(t, validatePayload(p), "solution")
	})
}

func TestFallbackChallenge(t *testing.T) {
	profile := testProfile()

	challenge := FallbackChallenge(profile, domain.LevelBuilder)

	assert.Equal(t, domain.ChallengeSourceFallback, challenge.Source)
	assert.Equal(t, "Algorithm Titan", challenge.BossCharacteristics.Name)
	assert.GreaterOrEqual(t, len(challenge.ProblemStatement.TestCases), 5)
	assert.GreaterOrEqual(t, len(strings.TrimSpace(challenge.Solution.Code)), minSolutionLength)

	c := challenge.EvaluationCriteria
	assert.Equal(t, 100, c.Correctness+c.Efficiency+c.CodeQuality+c.BossChallenge)

	// Starter code keyed by the user's primary language
	assert.Contains(t, challenge.StarterCode, "javascript")
}

func TestGuidelinesFor_UnknownLevelDefaultsToBuilder(t *testing.T) {
	g := GuidelinesFor(domain.Level("UNKNOWN"))

	assert.Equal(t, GuidelinesFor(domain.LevelBuilder), g)
}

func TestPromptIncludesPersonalization(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{{text: validChallengeJSON}}}
	svc := NewServiceWithSeed(client, 1)
	profile := testProfile()

	svc.Generate(context.Background(), profile, domain.LevelBuilder)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, profile.Username)
	assert.Contains(t, prompt, "javascript, go")
	assert.Contains(t, prompt, string(domain.LevelBuilder))
}
