// Package validation holds field-level constraint checks shared by the
// user directory and thought ledger.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 1
	maxUsernameLen = 30
	maxBodyLen     = 280
)

// ValidateUsername checks the trimmed username against length constraints.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	return nil
}

// ValidateEmail checks that the address matches the standard pattern used by
// the user data model.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailOK(email) {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// emailOK implements the local@domain.tld shape without pulling in a full
// RFC 5322 parser: one '@', non-empty local part, dotted domain with a
// 2-6 letter final label.
func emailOK(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.ContainsAny(local, " @") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	tld := domain[dot+1:]
	if len(tld) < 2 || len(tld) > 6 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '.' {
			return false
		}
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// ValidateBody checks a thought or reaction body against the 1-280 character
// constraint. kind names the field in the error message ("thoughtText" or
// "reactionBody").
func ValidateBody(kind, body string) error {
	if body == "" {
		return fmt.Errorf("%s is required", kind)
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return fmt.Errorf("%s must be between 1 and %d characters", kind, maxBodyLen)
	}
	return nil
}
