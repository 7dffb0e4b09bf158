package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Battle lifecycle errors
	ErrMsgBattleNotFound      = "boss battle not found"
	ErrMsgBattleAlreadyActive = "a boss battle is already active"
	ErrMsgBattleExpired       = "boss battle has expired"
	ErrMsgBattleNotStarted    = "boss battle has not been started"
	ErrMsgBattleFinished      = "boss battle is already finished"
	ErrMsgInvalidTransition   = "invalid battle state transition"
	ErrMsgAttemptsExhausted   = "maximum attempts exceeded"
	ErrMsgMaxLevelReached     = "already at the maximum level"
	ErrMsgUnauthorized        = "not authorized to access this battle"

	// Reward errors
	ErrMsgRewardAlreadyIssued = "reward already issued for this battle"

	// Persistence errors
	ErrMsgVersionConflict = "battle was modified concurrently"
	ErrMsgDatabaseError   = "database error"

	// Input errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgEmptySubmission = "submission code is empty"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Battle lifecycle errors
	ErrBattleNotFound      = errors.New(ErrMsgBattleNotFound)
	ErrBattleAlreadyActive = errors.New(ErrMsgBattleAlreadyActive)
	ErrBattleExpired       = errors.New(ErrMsgBattleExpired)
	ErrBattleNotStarted    = errors.New(ErrMsgBattleNotStarted)
	ErrBattleFinished      = errors.New(ErrMsgBattleFinished)
	ErrInvalidTransition   = errors.New(ErrMsgInvalidTransition)
	ErrAttemptsExhausted   = errors.New(ErrMsgAttemptsExhausted)
	ErrMaxLevelReached     = errors.New(ErrMsgMaxLevelReached)
	ErrUnauthorized        = errors.New(ErrMsgUnauthorized)

	// Reward errors
	ErrRewardAlreadyIssued = errors.New(ErrMsgRewardAlreadyIssued)

	// Persistence errors
	ErrVersionConflict = errors.New(ErrMsgVersionConflict)
	ErrDatabaseError   = errors.New(ErrMsgDatabaseError)

	// Input errors
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrEmptySubmission = errors.New(ErrMsgEmptySubmission)
)
