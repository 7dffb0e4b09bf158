package generator

import (
	"fmt"
	"strings"

	"github.com/gitforge/bossquest/internal/domain"
)

// promptParams carries the randomized inputs for one generation attempt
type promptParams struct {
	Theme        string
	Seed         int
	ProblemTypes []string
	Scenarios    []string
	Constraints  []string
}

// buildPrompt assembles the generation prompt for a personalized boss battle.
// The response contract is spelled out inline so the model returns a JSON
// object the payload decoder understands.
func buildPrompt(profile *domain.UserProfile, targetLevel domain.Level, params promptParams) string {
	g := GuidelinesFor(targetLevel)
	languages := strings.Join(profile.Languages, ", ")
	if languages == "" {
		languages = "JavaScript"
	}
	focusAreas := strings.Join(profile.FocusAreas, ", ")
	if focusAreas == "" {
		focusAreas = "General programming"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `BOSS BATTLE CHALLENGE GENERATOR
Random Seed: %d (use this for unique generation)

MISSION: Create a COMPLETELY UNIQUE and CHALLENGING coding problem for %s

DEVELOPER INTELLIGENCE:
- Current Mastery: %s (%s)
- Advancement Target: %s (%s)
- Core Strengths: %s
- Language Preferences: %s
- Completed Challenges: %d

BOSS BATTLE PARAMETERS:
- Epic Theme: %s
- Challenge Complexity: %s
- Expected Solve Time: %s
- Algorithm Complexity: %s
- Code Length Target: %s
- Skill Focus Areas: %s

RANDOMIZATION REQUIREMENTS:
- Problem Type Options: %s
- Scenario Variations: %s
- Constraint Modifiers: %s
- Generate never-before-seen problem combinations
- Create original examples with unique data patterns

CRITICAL GENERATION RULES:
1. UNIQUENESS: Every problem must be completely original and never repeated
2. CORRECTNESS: Provide mathematically sound examples with verified solutions
3. TESTABILITY: Include comprehensive test cases that validate the solution
4. SCALABILITY: Design problems that work with various input sizes
5. CLARITY: Write crystal-clear problem descriptions with no ambiguity

VALIDATION REQUIREMENTS:
- Provide 5+ diverse test cases with expected outputs
- Include edge cases (empty input, single element, maximum constraints)
- Verify all examples are mathematically correct
- Ensure solution is achievable within time/complexity limits

`,
		params.Seed, profile.Username,
		profile.Level.Info().Name, profile.Level,
		targetLevel.Info().Name, targetLevel,
		focusAreas, languages, profile.CompletedChallenges,
		params.Theme, g.Difficulty, g.Duration, g.Complexity, g.CodeLength,
		strings.Join(g.FocusAreas, ", "),
		strings.Join(params.ProblemTypes, ", "),
		strings.Join(params.Scenarios, ", "),
		strings.Join(params.Constraints, ", "),
	)

	b.WriteString(responseContract(params.Theme, g))
	fmt.Fprintf(&b, "\nCRITICAL: Ensure ALL examples and test cases are mathematically correct and the solution actually works!\nMake this EPIC, UNIQUE (Seed: %d), and perfectly tailored for %s!\n", params.Seed, profile.Username)
	return b.String()
}

// buildRetryPrompt assembles the stricter prompt used after a failed
// structural validation.
func buildRetryPrompt(profile *domain.UserProfile, targetLevel domain.Level, params promptParams) string {
	g := GuidelinesFor(targetLevel)

	var b strings.Builder
	fmt.Fprintf(&b, `ENHANCED BOSS BATTLE GENERATOR (RETRY)

CRITICAL: Previous generation failed validation. Create a PERFECT, COMPLETE boss battle.

USER: %s
LEVEL TRANSITION: %s -> %s
THEME: %s
SEED: %d

MANDATORY REQUIREMENTS:
1. Complete problem statement with clear description
2. Minimum 5 test cases with verified correct outputs
3. Working solution code that passes all test cases
4. Proper constraints and edge cases
5. Boss requirements that make sense

VALIDATION CHECKLIST:
- Title exists and is engaging
- Description explains the challenge clearly
- Problem statement is unambiguous
- Examples have input, output, and explanation
- Test cases cover edge cases and normal cases
- Solution code is complete and functional

`,
		profile.Username, profile.Level, targetLevel, params.Theme, params.Seed)

	b.WriteString(responseContract(params.Theme, g))
	b.WriteString("\nCRITICAL: Verify ALL test cases are mathematically correct before responding!\n")
	return b.String()
}

// responseContract describes the exact JSON object the model must return.
func responseContract(theme string, g Guidelines) string {
	return fmt.Sprintf(`Create a JSON response with this EXACT structure:
{
  "title": "Epic boss battle title with %[1]s theme",
  "description": "Engaging description of the boss battle challenge",
  "theme": "%[1]s",
  "duration": "%[2]s",
  "difficulty": "%[3]s",
  "problemStatement": {
    "description": "Clear, unambiguous problem description with specific requirements",
    "bossStory": "Epic narrative connecting the %[1]s theme to the coding challenge",
    "examples": [
      {"input": "concrete input", "output": "correct output", "explanation": "step-by-step reasoning"}
    ],
    "constraints": ["realistic constraint"],
    "edgeCases": ["empty input handling", "single element case", "boundary values"],
    "bossRequirements": ["algorithmic approach requirement", "performance requirement"],
    "testCases": [
      {"input": "test input", "expectedOutput": "verified output", "description": "what this verifies"}
    ]
  },
  "starterCode": {
    "language": "javascript",
    "code": "function solveBoss(input) {\n  // Implement your solution here\n}"
  },
  "solution": {
    "code": "// Complete, working solution that passes all test cases",
    "explanation": "Detailed explanation of the algorithm and approach",
    "timeComplexity": "%[4]s",
    "spaceComplexity": "Appropriate space complexity"
  },
  "bossCharacteristics": {
    "name": "Epic boss name incorporating the %[1]s theme",
    "description": "Boss description with personality and challenge level",
    "weaknesses": ["vulnerable to optimal algorithms"],
    "lore": "Backstory connecting the boss to the coding challenge"
  }
}
`, theme, g.Duration, g.Difficulty, g.Complexity)
}
