package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gitforge/bossquest/internal/domain"
	"github.com/gitforge/bossquest/internal/logger"
	"github.com/gitforge/bossquest/internal/reasoning"
)

// Service generates personalized boss challenges. Generate never fails: when
// the reasoning service cannot produce a structurally valid challenge after a
// retry, the deterministic fallback is returned instead.
type Service interface {
	Generate(ctx context.Context, profile *domain.UserProfile, targetLevel domain.Level) *domain.Challenge
}

type service struct {
	client reasoning.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a challenge generator backed by the given reasoning client.
func NewService(client reasoning.Client) Service {
	return &service{
		client: client,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewServiceWithSeed creates a generator with a fixed randomization seed. Used by tests.
func NewServiceWithSeed(client reasoning.Client, seed int64) Service {
	return &service{
		client: client,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *service) Generate(ctx context.Context, profile *domain.UserProfile, targetLevel domain.Level) *domain.Challenge {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGenerationStarted, "username", profile.Username, "target_level", targetLevel)

	params := s.randomParams(targetLevel)

	challenge, err := s.generateOnce(ctx, buildPrompt(profile, targetLevel, params))
	if err != nil {
		log.Warn(LogMsgGenerationFailed, "error", err)
		log.Info(LogMsgRetryingGeneration, "username", profile.Username)

		params = s.randomParams(targetLevel)
		challenge, err = s.generateOnce(ctx, buildRetryPrompt(profile, targetLevel, params))
	}

	if err != nil {
		log.Warn(LogMsgUsingFallback, "username", profile.Username, "error", err)
		challenge = FallbackChallenge(profile, targetLevel)
	}

	s.enhance(challenge, profile, targetLevel)
	log.Info(LogMsgGenerationSucceeded,
		"username", profile.Username,
		"title", challenge.Title,
		"source", challenge.Source)
	return challenge
}

// generateOnce performs a single prompt round-trip and structural validation.
func (s *service) generateOnce(ctx context.Context, prompt string) (*domain.Challenge, error) {
	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	extracted, err := reasoning.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	payload, err := decodePayload(extracted)
	if err != nil {
		return nil, err
	}

	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	return toChallenge(payload, s.pickTheme()), nil
}

// enhance fills in anything the model left out so every challenge is complete.
func (s *service) enhance(challenge *domain.Challenge, profile *domain.UserProfile, targetLevel domain.Level) {
	if len(challenge.PersonalizedElements.BasedOnLanguages) == 0 {
		challenge.PersonalizedElements.BasedOnLanguages = profile.Languages
	}
	if len(challenge.PersonalizedElements.BasedOnFocusAreas) == 0 {
		challenge.PersonalizedElements.BasedOnFocusAreas = profile.FocusAreas
	}
	if challenge.PersonalizedElements.DifficultyReason == "" {
		challenge.PersonalizedElements.DifficultyReason = "Calibrated for advancement to " + targetLevel.Info().Name
	}

	normalizeTestCases(challenge)

	if len(challenge.ProblemStatement.Constraints) == 0 {
		challenge.ProblemStatement.Constraints = s.pick(constraintsFor(targetLevel), pickConstraints)
	}
}

// normalizeTestCases assigns stable test ids and default descriptions.
func normalizeTestCases(challenge *domain.Challenge) {
	for i := range challenge.ProblemStatement.TestCases {
		tc := &challenge.ProblemStatement.TestCases[i]
		tc.TestID = testID(i)
		if tc.Description == "" {
			tc.Description = defaultTestDescription(i)
		}
	}
}

func (s *service) randomParams(targetLevel domain.Level) promptParams {
	theme := s.pickTheme()
	return promptParams{
		Theme:        theme,
		Seed:         s.intn(seedRange),
		ProblemTypes: s.pick(problemTypesFor(targetLevel), pickProblemTypes),
		Scenarios:    s.pick(scenariosFor(theme), pickScenarios),
		Constraints:  s.pick(constraintsFor(targetLevel), pickConstraints),
	}
}

func (s *service) pickTheme() string {
	return BossThemes[s.intn(len(BossThemes))]
}

// pick returns n random elements of pool without mutating it.
func (s *service) pick(pool []string, n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (s *service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func testID(i int) string {
	return fmt.Sprintf("test_%d", i+1)
}

func defaultTestDescription(i int) string {
	return fmt.Sprintf("Test case %d", i+1)
}
