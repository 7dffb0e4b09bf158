package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingURLParam   = "Missing %s path parameter"

	// Battle operation error messages
	ErrMsgCreateBattleFailed   = "Failed to create boss battle"
	ErrMsgGetBattleFailed      = "Failed to retrieve boss battle"
	ErrMsgStartBattleFailed    = "Failed to start boss battle"
	ErrMsgSubmitSolutionFailed = "Failed to submit solution"
	ErrMsgGetHistoryFailed     = "Failed to retrieve battle history"
	ErrMsgCleanupFailed        = "Failed to clean up expired battles"

	// Profile and perks error messages
	ErrMsgGetProfileFailed  = "Failed to retrieve profile"
	ErrMsgSaveProfileFailed = "Failed to save profile"
	ErrMsgGetPerksFailed    = "Failed to retrieve perks"
	ErrMsgUserNotFoundHTTP  = "user not found"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	// Battle success messages
	MsgBattleCreatedSuccess  = "Boss battle created. Face the boss when you are ready."
	MsgBattleStartedSuccess  = "The battle has begun!"
	MsgSolutionScoredSuccess = "Solution evaluated"
	MsgCleanupSuccess        = "Expired battles cleaned up"

	// Profile success messages
	MsgProfileSavedSuccess = "Profile saved successfully"
)
