package reasoning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *HTTPClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewHTTPClient(srv.URL, "test-key", "test-model", 5*time.Second)
	return srv, client
}

func completionBody(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestHTTPClientComplete(t *testing.T) {
	t.Run("returns completion content", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "user", req.Messages[0].Role)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(completionBody("the answer")))
		})

		result, err := client.Complete(context.Background(), "the question")

		require.NoError(t, err)
		assert.Equal(t, "the answer", result)
	})

	t.Run("classifies 429 as rate limited", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.True(t, IsRetryable(err))
	})

	t.Run("classifies 5xx as server error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServerError)
		assert.True(t, IsRetryable(err))
	})

	t.Run("classifies 4xx as non-retryable client error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClientError)
		assert.False(t, IsRetryable(err))
	})

	t.Run("errors on empty choices", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("errors on undecodable body", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json at all"))
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("surfaces embedded service error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": {"message": "model overloaded", "type": "overloaded"}}`))
		})

		_, err := client.Complete(context.Background(), "q")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServerError)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("omits authorization header without api key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(completionBody("ok")))
		}))
		t.Cleanup(srv.Close)

		client := NewHTTPClient(srv.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "q")

		require.NoError(t, err)
	})
}
