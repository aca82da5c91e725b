package service

import (
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeDomain reduces a stored website value to the bare domain the
// enrichment providers expect: "https://www.acme.com/contact" -> "acme.com".
// Internationalized names are converted to their ASCII (punycode) form.
func NormalizeDomain(website string) string {
	domain := strings.ToLower(strings.TrimSpace(website))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}

	if ascii, err := idna.Lookup.ToASCII(domain); err == nil && ascii != "" {
		domain = ascii
	}
	return domain
}
