// Package phone normalizes lead phone numbers for storage.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country code are assumed to be Indian.
const defaultRegion = "IN"

// NormalizeE164 returns the E.164 form of input. Unparseable or invalid
// numbers come back as the trimmed input; leads are never rejected over a
// phone number the library cannot read.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	parsed, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return trimmed
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}
