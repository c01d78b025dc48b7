// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// The agency operates in Spain; numbers without a country code are Spanish.
const defaultRegion = "ES"

// NormalizeE164 formats a phone number to E.164.
// Returns "" when the input cannot be parsed into a valid number.
func NormalizeE164(input string) string {
	number, ok := parse(input)
	if !ok || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsPlausible reports whether input parses as a number of a plausible length.
// It is looser than validity so foreign contacts are not rejected at intake.
func IsPlausible(input string) bool {
	number, ok := parse(input)
	if !ok {
		return false
	}
	return phonenumbers.IsPossibleNumber(number)
}

func parse(input string) (*phonenumbers.PhoneNumber, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}
	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return nil, false
	}
	return number, true
}
