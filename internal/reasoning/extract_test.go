package reasoning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("extracts bare JSON object", func(t *testing.T) {
		result, err := ExtractJSON(`{"title": "The Dragon"}`)

		require.NoError(t, err)
		assert.JSONEq(t, `{"title": "The Dragon"}`, result)
	})

	t.Run("extracts JSON surrounded by prose", func(t *testing.T) {
		text := `Sure! Here is the challenge you asked for:

{"title": "The Dragon", "difficulty": "Hard"}

Let me know if you need anything else.`

		result, err := ExtractJSON(text)

		require.NoError(t, err)
		assert.JSONEq(t, `{"title": "The Dragon", "difficulty": "Hard"}`, result)
	})

	t.Run("extracts JSON from markdown fences", func(t *testing.T) {
		text := "Here you go:\n```json\n{\"score\": 85}\n```\n"

		result, err := ExtractJSON(text)

		require.NoError(t, err)
		assert.JSONEq(t, `{"score": 85}`, result)
	})

	t.Run("handles nested objects", func(t *testing.T) {
		text := `prefix {"a": {"b": {"c": 1}}, "d": [1, 2]} suffix`

		result, err := ExtractJSON(text)

		require.NoError(t, err)

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(result), &parsed))
		assert.Contains(t, parsed, "a")
		assert.Contains(t, parsed, "d")
	})

	t.Run("handles braces inside string values", func(t *testing.T) {
		text := `{"feedback": "use { and } carefully"}`

		result, err := ExtractJSON(text)

		require.NoError(t, err)
		assert.JSONEq(t, text, result)
	})

	t.Run("handles escaped quotes inside strings", func(t *testing.T) {
		text := `{"feedback": "she said \"hello {\" to me"}`

		result, err := ExtractJSON(text)

		require.NoError(t, err)

		var parsed map[string]string
		require.NoError(t, json.Unmarshal([]byte(result), &parsed))
	})

	t.Run("errors when no object present", func(t *testing.T) {
		_, err := ExtractJSON("I could not generate a challenge, sorry.")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("errors on unbalanced object", func(t *testing.T) {
		_, err := ExtractJSON(`{"title": "truncated...`)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
