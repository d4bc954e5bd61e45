package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "ada_lovelace", false},
		{"single character", "a", false},
		{"at limit", strings.Repeat("a", 30), false},
		{"empty", "", true},
		{"over limit", strings.Repeat("a", 31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "ada@example.com", false},
		{"subdomain", "ada@mail.example.co.uk", false},
		{"empty", "", true},
		{"missing at", "ada.example.com", true},
		{"missing local part", "@example.com", true},
		{"missing domain", "ada@", true},
		{"missing tld", "ada@example", true},
		{"single letter tld", "ada@example.c", true},
		{"numeric tld", "ada@example.123", true},
		{"space in local part", "ada lovelace@example.com", true},
		{"empty domain label", "ada@.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", "a passing thought", false},
		{"single character", "x", false},
		{"at limit", strings.Repeat("x", 280), false},
		{"empty", "", true},
		{"over limit", strings.Repeat("x", 281), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBody("thoughtText", tt.body)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("error names the field", func(t *testing.T) {
		t.Parallel()
		err := ValidateBody("reactionBody", "")
		assert.ErrorContains(t, err, "reactionBody")
	})
}
