package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {
	// Not used in these tests
}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestPublisher(bus Bus, maxRetries int, delay time.Duration, path string) *ResilientPublisher {
	return NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     maxRetries,
		RetryDelay:     delay,
		DeadLetterPath: path,
	})
}

// Test 1: Successful publish without retry
func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}

	rp := newTestPublisher(bus, 3, 10*time.Millisecond, tmpFile)

	testEvent := Event{
		Type:    Type("test_event"),
		Payload: map[string]interface{}{"test": "data"},
	}
	err := rp.Publish(context.Background(), testEvent)
	require.NoError(t, err)

	assert.Equal(t, 1, bus.CallCount(), "Event should be published once")

	// No dead-letter file created
	_, statErr := os.Stat(tmpFile)
	assert.True(t, os.IsNotExist(statErr), "No dead-letter entries expected")
}

// Test 2: Failed publish, then retry succeeds
func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Bus fails on first attempt, succeeds on second
	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return attempt == 1
		},
	}

	rp := newTestPublisher(bus, 3, 10*time.Millisecond, tmpFile)

	testEvent := Event{
		Type:    Type("test_event"),
		Payload: map[string]interface{}{"id": "123"},
	}
	err := rp.Publish(context.Background(), testEvent)
	require.NoError(t, err, "Caller never sees the failure")

	// Wait for the background retry to fire
	require.Eventually(t, func() bool {
		return bus.CallCount() >= 2
	}, time.Second, 5*time.Millisecond, "Should attempt twice: initial + retry")

	time.Sleep(50 * time.Millisecond)
	_, statErr := os.Stat(tmpFile)
	assert.True(t, os.IsNotExist(statErr), "No dead-letter entries for successful retry")
}

// Test 3: Retry exhaustion writes a dead-letter entry
func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return true
		},
	}

	rp := newTestPublisher(bus, 3, 5*time.Millisecond, tmpFile)

	testEvent := Event{
		Type:    Type("test_event"),
		Payload: map[string]interface{}{"id": "456"},
	}
	require.NoError(t, rp.Publish(context.Background(), testEvent))

	// initial attempt + 3 retries
	require.Eventually(t, func() bool {
		return bus.CallCount() >= 4
	}, time.Second, 5*time.Millisecond, "Should exhaust all retries")

	require.Eventually(t, func() bool {
		content, err := os.ReadFile(tmpFile)
		return err == nil && len(content) > 0
	}, time.Second, 5*time.Millisecond, "Dead-letter file should have an entry")

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var dlEntry struct {
		SchemaVersion string `json:"schema_version"`
		Event         struct {
			Type    string                 `json:"type"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"event"`
		Attempts  int    `json:"attempts"`
		LastError string `json:"last_error"`
	}
	require.NoError(t, json.Unmarshal(content, &dlEntry), "Dead-letter should be valid JSON")

	assert.Equal(t, DeadLetterSchemaVersion, dlEntry.SchemaVersion)
	assert.Equal(t, "test_event", dlEntry.Event.Type)
	assert.Equal(t, 3, dlEntry.Attempts)
	assert.NotEmpty(t, dlEntry.LastError)
}

// Test 4: Exponential backoff delay calculation
func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second

	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}

// Test 5: Concurrent publishes on a healthy bus
func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &mockBus{}
	rp := newTestPublisher(bus, 3, 10*time.Millisecond, tmpFile)

	const numGoroutines = 10
	const eventsPerGoroutine = 5

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				testEvent := Event{
					Type:    Type("concurrent_test"),
					Payload: map[string]interface{}{"goroutine": goroutineID, "event": j},
				}
				assert.NoError(t, rp.Publish(context.Background(), testEvent))
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, numGoroutines*eventsPerGoroutine, bus.CallCount(),
		"All concurrent events should be published")
}

// Test 6: Subscribe delegates to the inner bus
func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := NewMemoryBus()
	rp := newTestPublisher(bus, 3, 10*time.Millisecond, tmpFile)

	received := make(chan Event, 1)
	rp.Subscribe(Type("delegated"), func(ctx context.Context, e Event) error {
		received <- e
		return nil
	})

	require.NoError(t, rp.Publish(context.Background(), Event{Type: Type("delegated")}))

	select {
	case e := <-received:
		assert.Equal(t, Type("delegated"), e.Type)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}
