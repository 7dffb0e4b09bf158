package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/reasoning"
)

// Log messages
const (
	LogMsgValidationStarted  = "Solution validation started"
	LogMsgValidationFailed   = "Solution failed validation"
	LogMsgScoringStarted     = "Solution scoring started"
	LogMsgEmergencyMode      = "Evaluation degraded to emergency validation"
	LogMsgServiceErrorResult = "Evaluation returned service error result"
)

// Service evaluates battle submissions. Evaluate never returns an error: when
// the reasoning service is unreachable it degrades to the emergency validator,
// and unexpected failures produce a zero-score service-error result.
type Service interface {
	Evaluate(ctx context.Context, battle *domain.Battle, submission domain.Submission) *domain.EvaluationResult
}

type service struct {
	client      reasoning.Client
	emergency   *EmergencyValidator
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures the evaluation service.
type Option func(*service)

// WithRetryPolicy overrides the per-stage retry attempts and delay.
func WithRetryPolicy(maxAttempts int, delay time.Duration) Option {
	return func(s *service) {
		s.maxAttempts = maxAttempts
		s.retryDelay = delay
	}
}

// NewService creates an evaluation pipeline backed by the reasoning client.
func NewService(client reasoning.Client, opts ...Option) Service {
	s := &service{
		client:      client,
		emergency:   NewEmergencyValidator(),
		maxAttempts: reasoning.DefaultMaxAttempts,
		retryDelay:  reasoning.DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Evaluate(ctx context.Context, battle *domain.Battle, submission domain.Submission) *domain.EvaluationResult {
	log := logger.FromContext(ctx)

	// Stage 1: validation. The model executes the submission against every
	// test case; any failure invalidates the attempt.
	log.Info(LogMsgValidationStarted, "battle_id", battle.BattleID)
	validation, err := s.validate(ctx, battle, submission)
	if err != nil {
		return s.degrade(ctx, submission, err)
	}

	if !validation.IsValid {
		log.Info(LogMsgValidationFailed,
			"battle_id", battle.BattleID,
			"tests_passed", validation.TestsPassed,
			"total_tests", validation.TotalTests)
		return invalidResult(validation)
	}

	// Stage 2: rubric scoring for valid solutions only.
	log.Info(LogMsgScoringStarted, "battle_id", battle.BattleID)
	scoring, err := s.score(ctx, battle, submission)
	if err != nil {
		return s.degrade(ctx, submission, err)
	}

	score, err := scoring.resolveScore()
	if err != nil {
		return s.degrade(ctx, submission, err)
	}

	return &domain.EvaluationResult{
		Score:        score,
		IsValid:      true,
		Feedback:     feedbackOrDefault(scoring.Feedback),
		Strengths:    scoring.Strengths,
		Improvements: scoring.Improvements,
		Breakdown: domain.ScoreBreakdown{
			Correctness:   scoring.Correctness,
			Efficiency:    scoring.Efficiency,
			CodeQuality:   scoring.CodeQuality,
			BossChallenge: scoring.BossChallenge,
		},
		TestCaseResults: validation.testCaseResults(),
		ComplexityAnalysis: domain.ComplexityAnalysis{
			TimeComplexity:  scoring.ComplexityAnalysis.TimeComplexity,
			SpaceComplexity: scoring.ComplexityAnalysis.SpaceComplexity,
			IsOptimal:       scoring.ComplexityAnalysis.IsOptimal,
		},
		Mode:        domain.EvaluationModeAI,
		EvaluatedAt: time.Now(),
	}
}

func (s *service) validate(ctx context.Context, battle *domain.Battle, submission domain.Submission) (*validationPayload, error) {
	raw, err := reasoning.CompleteWithRetry(ctx, s.client, buildValidationPrompt(battle, submission), s.maxAttempts, s.retryDelay)
	if err != nil {
		return nil, err
	}
	extracted, err := reasoning.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return decodeValidationPayload(extracted)
}

func (s *service) score(ctx context.Context, battle *domain.Battle, submission domain.Submission) (*scoringPayload, error) {
	raw, err := reasoning.CompleteWithRetry(ctx, s.client, buildScoringPrompt(battle, submission), s.maxAttempts, s.retryDelay)
	if err != nil {
		return nil, err
	}
	extracted, err := reasoning.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return decodeScoringPayload(extracted)
}

// degrade picks the failure path: transient service trouble goes through the
// emergency validator, anything else yields a service-error result.
func (s *service) degrade(ctx context.Context, submission domain.Submission, cause error) *domain.EvaluationResult {
	log := logger.FromContext(ctx)

	if reasoning.IsRetryable(cause) {
		log.Warn(LogMsgEmergencyMode, "error", cause)
		return s.emergency.Evaluate(submission)
	}

	log.Warn(LogMsgServiceErrorResult, "error", cause)
	return &domain.EvaluationResult{
		Score:        0,
		IsValid:      false,
		Feedback:     fmt.Sprintf("Evaluation service error. Cannot validate solution: %v", cause),
		Improvements: []string{"Retry submission when the evaluation service is available"},
		Mode:         domain.EvaluationModeAI,
		ServiceError: true,
		EvaluatedAt:  time.Now(),
	}
}

// invalidResult is the short-circuit zero-score result for submissions that
// failed test-case validation.
func invalidResult(validation *validationPayload) *domain.EvaluationResult {
	failed := validation.TotalTests - validation.TestsPassed
	return &domain.EvaluationResult{
		Score:   0,
		IsValid: false,
		Feedback: fmt.Sprintf("Solution INVALID: Failed %d out of %d test cases. %s",
			failed, validation.TotalTests, validation.Feedback),
		Improvements: []string{
			"Fix failing test cases",
			"Ensure solution handles all edge cases",
			"Verify algorithm correctness",
		},
		TestCaseResults: validation.testCaseResults(),
		Mode:            domain.EvaluationModeAI,
		EvaluatedAt:     time.Now(),
	}
}

func feedbackOrDefault(feedback string) string {
	if feedback == "" {
		return "Solution evaluated"
	}
	return feedback
}
