package model

import "fmt"

// DomainStatus is the lifecycle state of a custom domain.
type DomainStatus string

const (
	DomainStatusPending      DomainStatus = "pending"
	DomainStatusVerified     DomainStatus = "verified"
	DomainStatusProvisioning DomainStatus = "provisioning"
	DomainStatusActive       DomainStatus = "active"
	DomainStatusFailed       DomainStatus = "failed"
)

// SSLStatus is the certificate issuance state reported by the hosting
// platform.
type SSLStatus string

const (
	SSLStatusPending      SSLStatus = "pending"
	SSLStatusProvisioning SSLStatus = "provisioning"
	SSLStatusActive       SSLStatus = "active"
)

// DomainEvent is a lifecycle event applied to a domain's status.
type DomainEvent string

const (
	// EventDNSVerified: the CNAME record matched the expected target.
	EventDNSVerified DomainEvent = "dns_verified"
	// EventDNSCheckFailed: DNS records missing, wrong, or the resolver errored.
	EventDNSCheckFailed DomainEvent = "dns_check_failed"
	// EventRegistered: the hosting platform accepted the domain; SSL issuance pending.
	EventRegistered DomainEvent = "registered"
	// EventRegistrationFailed: the hosting platform rejected the registration.
	EventRegistrationFailed DomainEvent = "registration_failed"
	// EventSSLIssued: the hosting platform reports the certificate as issued.
	EventSSLIssued DomainEvent = "ssl_issued"
	// EventSSLPending: the hosting platform reports issuance still in progress.
	EventSSLPending DomainEvent = "ssl_pending"
)

// Transition applies a lifecycle event to the current domain status and
// returns the next one. Every status write goes through this function so that
// illegal transitions (e.g. active -> provisioning without an intervening
// failure) are rejected by construction rather than by convention.
func Transition(current DomainStatus, event DomainEvent) (DomainStatus, error) {
	switch event {
	case EventDNSVerified:
		switch current {
		case DomainStatusPending, DomainStatusVerified, DomainStatusFailed, DomainStatusProvisioning:
			return DomainStatusVerified, nil
		case DomainStatusActive:
			// Re-verification of a live domain re-confirms it.
			return DomainStatusActive, nil
		}

	case EventDNSCheckFailed, EventRegistrationFailed:
		switch current {
		case DomainStatusPending, DomainStatusVerified, DomainStatusProvisioning, DomainStatusActive, DomainStatusFailed:
			return DomainStatusFailed, nil
		}

	case EventRegistered:
		// Failed is allowed so a failed registration can be retried directly
		// once DNS has verified at least once.
		switch current {
		case DomainStatusVerified, DomainStatusProvisioning, DomainStatusFailed:
			return DomainStatusProvisioning, nil
		}

	case EventSSLIssued:
		switch current {
		case DomainStatusVerified, DomainStatusProvisioning, DomainStatusFailed, DomainStatusActive:
			return DomainStatusActive, nil
		}

	case EventSSLPending:
		switch current {
		case DomainStatusProvisioning, DomainStatusFailed:
			return DomainStatusProvisioning, nil
		}

	default:
		return current, fmt.Errorf("unknown domain event %q", event)
	}

	return current, fmt.Errorf("illegal transition: %s + %s", current, event)
}

// SSLStatusFromPlatform maps the hosting platform's certificate state onto
// the local enum: "issued" means active, anything else is still provisioning.
func SSLStatusFromPlatform(state string) SSLStatus {
	if state == "issued" {
		return SSLStatusActive
	}
	return SSLStatusProvisioning
}
