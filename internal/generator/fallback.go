package generator

import (
	"fmt"

	"github.com/gitforge/bossquest/internal/domain"
)

// FallbackChallenge returns the deterministic maximum-subarray challenge used
// when the reasoning service cannot produce a valid battle. Its content is
// fixed so generation can never fail.
func FallbackChallenge(profile *domain.UserProfile, targetLevel domain.Level) *domain.Challenge {
	g := GuidelinesFor(targetLevel)
	language := profile.PrimaryLanguage()
	targetName := targetLevel.Info().Name

	return &domain.Challenge{
		Title:         fmt.Sprintf("Epic Boss Challenge: Rise to %s", targetName),
		Description:   fmt.Sprintf("Face the ultimate coding challenge to prove you're ready for %s level!", targetName),
		Difficulty:    g.Difficulty,
		EstimatedTime: g.Duration,
		ProblemStatement: domain.ProblemStatement{
			Description: "Given an array of integers, find the maximum sum of any contiguous subarray. This classic problem tests your dynamic programming skills and algorithmic thinking.",
			BossStory:   "The Algorithm Titan guards the path to your next developer level. This ancient being challenges all who seek advancement with the legendary Maximum Subarray Problem. Only those who can demonstrate true algorithmic mastery may pass!",
			Examples: []domain.Example{
				{
					Input:       "[-2, 1, -3, 4, -1, 2, 1, -5, 4]",
					Output:      "6",
					Explanation: "The contiguous subarray [4, -1, 2, 1] has the largest sum = 6",
				},
				{
					Input:       "[1]",
					Output:      "1",
					Explanation: "Single element array returns the element itself",
				},
				{
					Input:       "[5, 4, -1, 7, 8]",
					Output:      "23",
					Explanation: "The entire array has the maximum sum = 23",
				},
			},
			Constraints: []string{
				"1 <= array.length <= 10^5",
				"-10^4 <= array[i] <= 10^4",
				"Array contains at least one element",
			},
			EdgeCases: []string{
				"Single element",
				"All negative numbers",
				"All positive numbers",
				"Mixed positive and negative",
			},
			BossRequirements: []string{
				"Implement optimal O(n) solution using Kadane's algorithm",
				"Handle edge cases properly",
				"Write clean, readable code with meaningful variable names",
			},
			TestCases: []domain.TestCase{
				{
					TestID:         "test_1",
					Input:          "[-2, 1, -3, 4, -1, 2, 1, -5, 4]",
					ExpectedOutput: "6",
					Description:    "Classic example with mixed positive and negative numbers",
				},
				{
					TestID:         "test_2",
					Input:          "[1]",
					ExpectedOutput: "1",
					Description:    "Single element edge case",
				},
				{
					TestID:         "test_3",
					Input:          "[-1, -2, -3, -4]",
					ExpectedOutput: "-1",
					Description:    "All negative numbers - return least negative",
				},
				{
					TestID:         "test_4",
					Input:          "[1, 2, 3, 4, 5]",
					ExpectedOutput: "15",
					Description:    "All positive numbers - return sum of all",
				},
				{
					TestID:         "test_5",
					Input:          "[0, -1, 2, -1, 3]",
					ExpectedOutput: "4",
					Description:    "Array with zeros and mixed signs",
				},
			},
		},
		StarterCode: map[string]string{
			language: "function solveBoss(input) {\n  // Parse the input array\n  const arr = JSON.parse(input);\n\n  // Implement Kadane's algorithm here\n  // Your solution should handle all edge cases\n\n  return maxSum;\n}",
		},
		Solution: domain.Solution{
			Code:        "function solveBoss(input) {\n  const arr = JSON.parse(input);\n\n  if (arr.length === 0) return 0;\n  if (arr.length === 1) return arr[0];\n\n  let maxSoFar = arr[0];\n  let maxEndingHere = arr[0];\n\n  for (let i = 1; i < arr.length; i++) {\n    maxEndingHere = Math.max(arr[i], maxEndingHere + arr[i]);\n    maxSoFar = Math.max(maxSoFar, maxEndingHere);\n  }\n\n  return maxSoFar;\n}",
			Explanation: "Uses Kadane's algorithm to find maximum subarray sum in O(n) time. Maintains running maximum and updates global maximum.",
			Approach:    "O(n)",
		},
		EvaluationCriteria: domain.DefaultEvaluationCriteria(),
		PersonalizedElements: domain.PersonalizedElements{
			BasedOnLanguages:  profile.Languages,
			BasedOnFocusAreas: profile.FocusAreas,
			DifficultyReason:  fmt.Sprintf("Calibrated for advancement to %s", targetName),
		},
		BossCharacteristics: domain.BossCharacteristics{
			Theme:       "algorithm-titan",
			Name:        "Algorithm Titan",
			Personality: "Ancient guardian of algorithmic knowledge, master of dynamic programming and optimization",
			WeakSpot:    "Kadane's Algorithm",
		},
		Source: domain.ChallengeSourceFallback,
	}
}
