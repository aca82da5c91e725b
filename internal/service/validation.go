package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)

const defaultPhoneRegion = "US"

// ValidEmail performs a cheap shape check on a lowercased address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone parses a raw phone value and returns its E.164 form. The
// region hint is a two-letter country code used for national-format input;
// empty falls back to defaultPhoneRegion.
func NormalizePhone(raw, region string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if region == "" {
		region = defaultPhoneRegion
	}

	number, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return "", false
	}
	return phonenumbers.Format(number, phonenumbers.E164), true
}
