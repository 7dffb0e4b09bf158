package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test boundaries
const (
	MaxUsernameLength = 100
	MinLimit          = 1
	MaxLimit          = 100
)

type TestStruct struct {
	Language string `validate:"language"`
	Username string `validate:"required,max=100,excludesall=\x00\n\r\t"`
	Limit    int    `validate:"min=1,max=100"`
}

// =============================================================================
// Validator Tests - Demonstrating 5-Case Testing Model
// =============================================================================

func TestValidator_LanguageValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		language string
		wantErr  bool
	}{
		// CASE 1: Best Case
		{"valid javascript", "javascript", false},
		{"valid python", "python", false},
		{"valid go", "go", false},

		// CASE 2: Boundary - empty allowed (not required)
		{"empty language allowed", "", false},

		// CASE 3: Edge - case insensitive
		{"uppercase language", "PYTHON", false},

		// CASE 4: Invalid Case
		{"invalid language", "brainfuck", true},
		{"typo", "javascrpt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Language: tt.language,
				Username: "validuser",
				Limit:    10,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_UsernameValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		// CASE 1: Best Case
		{"valid username", "validuser", false},
		{"alphanumeric", "user123", false},
		{"with underscore", "user_name", false},

		// CASE 2: Boundary Case
		{"one char (just inside)", "a", false},
		{"exactly max length", strings.Repeat("a", MaxUsernameLength), false},
		{"over max length", strings.Repeat("a", MaxUsernameLength+1), true},

		// CASE 4: Invalid Case
		{"empty username", "", true},
		{"with newline", "user\nname", true},
		{"with tab", "user\tname", true},
		{"with null byte", "user\x00name", true},
		{"with carriage return", "user\rname", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Language: "javascript",
				Username: tt.username,
				Limit:    10,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_LimitValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		// CASE 1: Best Case
		{"valid limit", 10, false},
		{"mid range", 50, false},

		// CASE 2: Boundary Case
		{"negative (beyond lower)", -1, true},
		{"zero (on lower boundary)", 0, true},
		{"one (at min)", MinLimit, false},
		{"max allowed", MaxLimit, false},
		{"over max (beyond upper)", MaxLimit + 1, true},

		// CASE 2: Worst Case - extremes
		{"very negative", -999999, true},
		{"very large", 999999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				Language: "javascript",
				Username: "validuser",
				Limit:    tt.limit,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err, "Expected validation error for limit=%d", tt.limit)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_MultipleFieldErrors(t *testing.T) {
	InitValidator()
	v := GetValidator()

	t.Run("all fields invalid", func(t *testing.T) {
		input := TestStruct{
			Language: "invalid",
			Username: "", // Required field
			Limit:    0,  // Below minimum
		}

		err := v.ValidateStruct(input)

		require.Error(t, err)
		// Should have errors for all three fields
		assert.Contains(t, err.Error(), "Language")
		assert.Contains(t, err.Error(), "Username")
		assert.Contains(t, err.Error(), "Limit")
	})
}
