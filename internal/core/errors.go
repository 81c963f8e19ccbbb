package core

import "errors"

var (
	// ErrDNSNotConfigured is returned when registration is attempted before
	// the domain's DNS has been verified.
	ErrDNSNotConfigured = errors.New("domain DNS is not configured; verify the domain before registering it")

	// ErrNotRegistered is returned when an SSL check is attempted for a
	// domain that was never registered with the hosting platform.
	ErrNotRegistered = errors.New("domain is not registered with the hosting platform")

	// ErrRegistrarNotConfigured is returned when the Netlify credentials are
	// missing and a registrar or SSL-poller operation is attempted.
	ErrRegistrarNotConfigured = errors.New("netlify credentials not configured")
)
