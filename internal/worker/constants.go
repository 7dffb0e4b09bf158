package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Expiration Worker
// ============================================================================

// Log messages for battle expiration worker operations
const (
	LogMsgSchedulingExpiration  = "Scheduling battle expiration"
	LogMsgExpiringBattle        = "Expiring overdue battle"
	LogMsgFailedToExpireBattle  = "Failed to expire battle"
	LogMsgExpirationSweepFailed = "Expiration sweep failed"
	LogMsgExpirationSweepResult = "Expiration sweep expired battles"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
