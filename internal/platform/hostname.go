package platform

import (
	"fmt"
	"strings"
)

// NormalizeHostname lowercases a hostname and strips the trailing dot that
// DNS answers carry in FQDN notation.
func NormalizeHostname(s string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
}

// PlatformHostname generates the platform hostname customers point their
// CNAME records at. Example: acme.bookinghost.app
func PlatformHostname(subdomain, baseHostname string) string {
	return fmt.Sprintf("%s.%s", subdomain, baseHostname)
}

// IsValidHostname checks if s is a valid DNS hostname. Labels separated by
// dots, each label 1-63 chars, alphanumeric + hyphens, no leading/trailing
// hyphens, total max 253 chars.
func IsValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > 63 {
		return false
	}
	if label[0] == '-' || label[n-1] == '-' {
		return false
	}
	for _, c := range label {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}
