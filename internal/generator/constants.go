package generator

// Structural validation thresholds
const (
	minTestCases      = 3
	minSolutionLength = 50
)

// Randomization pick sizes
const (
	pickProblemTypes = 3
	pickScenarios    = 2
	pickConstraints  = 3
)

// seedRange bounds the per-generation uniqueness seed embedded in prompts
const seedRange = 10000

// Log messages
const (
	LogMsgGenerationStarted   = "Boss challenge generation started"
	LogMsgGenerationFailed    = "Boss challenge generation attempt failed"
	LogMsgRetryingGeneration  = "Retrying boss challenge generation with enhanced prompt"
	LogMsgUsingFallback       = "Using fallback boss challenge"
	LogMsgGenerationSucceeded = "Boss challenge generated"
)
