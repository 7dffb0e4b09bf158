package evaluation

import (
	"fmt"
	"strings"

	"github.com/gitforge/bossquest/internal/domain"
)

// buildValidationPrompt asks the model to mentally execute the submission
// against every test case and report pass/fail per case.
func buildValidationPrompt(battle *domain.Battle, submission domain.Submission) string {
	var b strings.Builder
	b.WriteString(`AI CODE EXECUTION & VALIDATION SYSTEM

You are an advanced code execution engine. Your job is to:
1. Execute the submitted solution against all test cases
2. Validate correctness by comparing outputs
3. Identify any errors or issues
4. Provide a comprehensive validation report

PROBLEM CONTEXT:
`)
	b.WriteString(battle.Challenge.ProblemStatement.Description)
	b.WriteString("\n\nTEST CASES TO EXECUTE:\n")
	writeTestCases(&b, battle.Challenge.ProblemStatement.TestCases)

	fmt.Fprintf(&b, "\nSUBMITTED SOLUTION:\n```%s\n%s\n```\n", submission.Language, submission.Code)

	b.WriteString(`
EXECUTION INSTRUCTIONS:
1. Mentally execute the solution for each test case
2. Compare actual output with expected output
3. Identify any runtime errors, logic errors, or exceptions
4. Determine if the solution handles edge cases properly

VALIDATION CRITERIA:
- Solution must pass ALL test cases to be considered valid
- Any test case failure makes the solution invalid
- Runtime errors or exceptions make the solution invalid
- Incorrect outputs make the solution invalid

Respond with this EXACT JSON format:
{
  "isValid": true,
  "executionResults": [
    {
      "testCase": 1,
      "input": "test_input",
      "expectedOutput": "expected_result",
      "actualOutput": "actual_result",
      "passed": true,
      "error": null
    }
  ],
  "testsPassed": 5,
  "totalTests": 5,
  "errors": [],
  "feedback": "Detailed validation feedback"
}

CRITICAL RULES:
- If ANY test case fails, set isValid: false
- Execute the code mentally and verify outputs
- Be precise in your execution simulation
- Report exact differences between expected and actual outputs

EXECUTE AND VALIDATE NOW:
`)
	return b.String()
}

// buildScoringPrompt asks the model for a rubric-weighted score of an
// already-validated submission.
func buildScoringPrompt(battle *domain.Battle, submission domain.Submission) string {
	var b strings.Builder
	b.WriteString(`ADVANCED CODE EVALUATION SYSTEM

You are an expert software engineer and algorithm specialist. Evaluate this boss battle solution with mathematical precision and professional standards.

CHALLENGE CONTEXT:
`)
	fmt.Fprintf(&b, "- Battle: %s\n", battle.Challenge.Title)
	fmt.Fprintf(&b, "- Developer Level: %s -> %s\n", battle.CurrentLevel, battle.TargetLevel)
	fmt.Fprintf(&b, "- Theme: %s\n", battle.Challenge.BossCharacteristics.Theme)
	fmt.Fprintf(&b, "- Difficulty: %s\n", battle.Challenge.Difficulty)
	fmt.Fprintf(&b, "- Expected Complexity: %s\n", expectedComplexity(battle))

	b.WriteString("\nPROBLEM SPECIFICATION:\n")
	b.WriteString(battle.Challenge.ProblemStatement.Description)

	b.WriteString("\n\nBOSS REQUIREMENTS (CRITICAL):\n")
	writeBullets(&b, battle.Challenge.ProblemStatement.BossRequirements)

	b.WriteString("\nCONSTRAINTS TO VERIFY:\n")
	writeBullets(&b, battle.Challenge.ProblemStatement.Constraints)

	b.WriteString("\nTEST CASES FOR VALIDATION:\n")
	writeTestCases(&b, battle.Challenge.ProblemStatement.TestCases)

	fmt.Fprintf(&b, "\nSUBMITTED SOLUTION:\n```%s\n%s\n```\n", submission.Language, submission.Code)

	fmt.Fprintf(&b, `
EVALUATION METHODOLOGY:

1. CORRECTNESS ANALYSIS (40 points):
   - Does the solution produce correct outputs for all test cases?
   - Are edge cases handled properly?
   - Is the algorithm logic sound?

2. EFFICIENCY EVALUATION (25 points):
   - What is the time complexity? Is it optimal for the problem?
   - What is the space complexity? Is memory usage reasonable?
   - Does it meet the performance requirements for %[1]s level?

3. CODE QUALITY ASSESSMENT (20 points):
   - Is the code readable and well-structured?
   - Are variable names meaningful?
   - Does it follow good programming practices?

4. BOSS CHALLENGE COMPLIANCE (15 points):
   - Does the solution meet all special boss requirements?
   - Does it demonstrate mastery appropriate for %[1]s level?

SCORING STANDARDS:
- 95-100: Exceptional solution - optimal algorithm, perfect implementation
- 85-94: Excellent solution - correct, efficient, minor room for improvement
- 75-84: Good solution - correct with decent efficiency and code quality
- 65-74: Acceptable solution - works but has optimization or quality issues
- 50-64: Poor solution - partially correct or significant issues
- 25-49: Very poor solution - major flaws but shows some understanding
- 0-24: Failing solution - incorrect, non-functional, or off-topic

Respond with this EXACT JSON format:
{
  "score": 87,
  "correctness": 36,
  "efficiency": 23,
  "codeQuality": 18,
  "bossChallenge": 10,
  "feedback": "Comprehensive evaluation explanation",
  "strengths": ["specific strength 1", "specific strength 2"],
  "improvements": ["specific improvement 1"],
  "complexityAnalysis": {
    "timeComplexity": "O(n log n)",
    "spaceComplexity": "O(n)",
    "isOptimal": true
  }
}

EVALUATE NOW with mathematical precision and professional expertise:
`, battle.TargetLevel)
	return b.String()
}

func expectedComplexity(battle *domain.Battle) string {
	if battle.Challenge.Solution.Approach != "" {
		return battle.Challenge.Solution.Approach
	}
	return "Optimal for level"
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeTestCases(b *strings.Builder, cases []domain.TestCase) {
	for i, tc := range cases {
		desc := tc.Description
		if desc == "" {
			desc = "Verify correctness"
		}
		fmt.Fprintf(b, "Test Case %d:\n  Input: %s\n  Expected Output: %s\n  Purpose: %s\n\n",
			i+1, tc.Input, tc.ExpectedOutput, desc)
	}
}
