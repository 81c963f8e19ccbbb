package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookhive/domains/internal/model"
	"github.com/bookhive/domains/internal/platform"
)

// VerificationService checks a custom domain's DNS against the expected
// CNAME target and advances the persisted lifecycle accordingly.
type VerificationService struct {
	db           DB
	domains      *CustomDomainService
	registration *RegistrationService
	resolver     DNSResolver
	// expectedTarget is the hostname customer CNAME records must point at,
	// e.g. edge.bookinghost.app.
	expectedTarget string
}

func NewVerificationService(db DB, domains *CustomDomainService, registration *RegistrationService, resolver DNSResolver, expectedTarget string) *VerificationService {
	return &VerificationService{
		db:             db,
		domains:        domains,
		registration:   registration,
		resolver:       resolver,
		expectedTarget: expectedTarget,
	}
}

// VerifyResult is the outcome of one verification attempt.
type VerifyResult struct {
	Configured bool                `json:"configured"`
	Error      string              `json:"error,omitempty"`
	Domain     *model.CustomDomain `json:"domain,omitempty"`
	// Netlify carries the registrar result when verification triggered a
	// registration (or the registration error when it failed non-fatally).
	Netlify *RegisterResult `json:"netlify_status,omitempty"`
}

// Verify checks the domain's CNAME record against the expected target.
// Resolver failures and missing records are reported as configured=false
// with an operator-readable message, never as a thrown error; only store
// failures error out. On a first successful verification the registrar is
// invoked synchronously, non-fatally.
func (s *VerificationService) Verify(ctx context.Context, domainID string) (*VerifyResult, error) {
	d, err := s.domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	cnames, err := s.resolver.Lookup(ctx, d.Domain, "CNAME")
	if err != nil {
		msg := fmt.Sprintf("DNS lookup failed: %s", err.Error())
		return s.fail(ctx, d, now, msg)
	}

	if len(cnames) == 0 {
		// An A record alone never verifies, but it produces a more specific
		// message than a domain with no records at all.
		msg := fmt.Sprintf("No DNS records found for %s. Create a CNAME record pointing it to %s.", d.Domain, s.expectedTarget)
		if aRecords, aErr := s.resolver.Lookup(ctx, d.Domain, "A"); aErr == nil && len(aRecords) > 0 {
			msg = fmt.Sprintf("%s has an A record but no CNAME record. A CNAME record pointing to %s is required.", d.Domain, s.expectedTarget)
		}
		return s.fail(ctx, d, now, msg)
	}

	if !matchesTarget(cnames, s.expectedTarget) {
		msg := fmt.Sprintf("CNAME record for %s points to %s, expected %s.", d.Domain, platform.NormalizeHostname(cnames[0]), s.expectedTarget)
		return s.fail(ctx, d, now, msg)
	}

	next, err := model.Transition(d.Status, model.EventDNSVerified)
	if err != nil {
		return nil, err
	}

	// A re-verified active domain keeps its issued certificate; everything
	// else is about to enter SSL provisioning.
	sslStatus := model.SSLStatusProvisioning
	if next == model.DomainStatusActive {
		sslStatus = model.SSLStatusActive
	}

	_, err = s.db.Exec(ctx,
		`UPDATE custom_domains
		 SET status = $1, dns_configured = true, verified_at = $2, last_checked_at = $2,
		     ssl_certificate_status = $3, error_message = NULL, updated_at = now()
		 WHERE id = $4`,
		next, now, sslStatus, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("persist verification for %s: %w", d.ID, err)
	}

	result := &VerifyResult{Configured: true}

	// First successful verification also registers the domain. Registration
	// failure is non-fatal here: verification itself still succeeded.
	if !d.Registered() {
		reg, regErr := s.registration.Register(ctx, d.ID)
		if regErr != nil {
			result.Netlify = &RegisterResult{Success: false, Error: regErr.Error()}
		} else {
			result.Netlify = reg
		}
	}

	updated, err := s.domains.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	result.Domain = updated
	return result, nil
}

// fail persists a verification failure and reports it as a non-configured
// result rather than an error.
func (s *VerificationService) fail(ctx context.Context, d *model.CustomDomain, now time.Time, msg string) (*VerifyResult, error) {
	next, err := model.Transition(d.Status, model.EventDNSCheckFailed)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx,
		`UPDATE custom_domains
		 SET status = $1, dns_configured = false, last_checked_at = $2,
		     error_message = $3, updated_at = now()
		 WHERE id = $4`,
		next, now, msg, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("persist verification failure for %s: %w", d.ID, err)
	}

	updated, err := s.domains.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Configured: false, Error: msg, Domain: updated}, nil
}

// matchesTarget tests whether any observed CNAME value contains the expected
// target. Both sides are normalized (lower-cased, trailing dot stripped) and
// matched by containment rather than equality, to tolerate
// registrar-appended suffixes.
func matchesTarget(cnames []string, expectedTarget string) bool {
	expected := platform.NormalizeHostname(expectedTarget)
	for _, c := range cnames {
		if strings.Contains(platform.NormalizeHostname(c), expected) {
			return true
		}
	}
	return false
}
