package core

import (
	"context"
	"fmt"
	"time"

	"github.com/bookhive/domains/internal/model"
)

// SSLService polls the hosting platform for certificate issuance and
// advances domains from provisioning to active.
type SSLService struct {
	db        DB
	domains   *CustomDomainService
	registrar Registrar
}

func NewSSLService(db DB, domains *CustomDomainService, registrar Registrar) *SSLService {
	return &SSLService{db: db, domains: domains, registrar: registrar}
}

// CheckResult is the outcome of a single-domain SSL check.
type CheckResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	// SSLStatus is the raw state reported by the hosting platform.
	SSLStatus string `json:"ssl_status"`
	// SSLCertificateStatus is the persisted local state after the check.
	SSLCertificateStatus model.SSLStatus `json:"ssl_certificate_status"`
}

// SweepOutcome is the per-domain result of a bulk sweep.
type SweepOutcome struct {
	DomainID  string          `json:"domain_id"`
	Domain    string          `json:"domain"`
	Updated   bool            `json:"updated"`
	SSLStatus model.SSLStatus `json:"ssl_status,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// SweepResult reports a bulk sweep: how many domains were checked and what
// happened to each.
type SweepResult struct {
	Checked int            `json:"checked"`
	Results []SweepOutcome `json:"results"`
}

// Check fetches the current SSL state for one domain. The domain must have
// been registered (ErrNotRegistered otherwise).
func (s *SSLService) Check(ctx context.Context, domainID string) (*CheckResult, error) {
	if s.registrar == nil {
		return nil, ErrRegistrarNotConfigured
	}

	d, err := s.domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	return s.check(ctx, d)
}

func (s *SSLService) check(ctx context.Context, d *model.CustomDomain) (*CheckResult, error) {
	if !d.Registered() {
		return nil, ErrNotRegistered
	}

	nd, err := s.registrar.GetDomain(ctx, *d.NetlifyDomainID)
	if err != nil {
		return nil, fmt.Errorf("check ssl for %s: %w", d.Domain, err)
	}

	sslStatus := model.SSLStatusFromPlatform(nd.SSL.State)
	event := model.EventSSLPending
	if sslStatus == model.SSLStatusActive {
		event = model.EventSSLIssued
	}

	now := time.Now()
	next, terr := model.Transition(d.Status, event)
	if terr != nil {
		// An active domain whose platform state momentarily reads as not
		// issued must not slide back to provisioning; record the check and
		// keep the persisted state.
		_, err = s.db.Exec(ctx,
			`UPDATE custom_domains SET last_checked_at = $1, updated_at = now() WHERE id = $2`,
			now, d.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("persist ssl check for %s: %w", d.ID, err)
		}
		return &CheckResult{
			Success:              true,
			Domain:               d.Domain,
			SSLStatus:            nd.SSL.State,
			SSLCertificateStatus: d.SSLCertificateStatus,
		}, nil
	}

	_, err = s.db.Exec(ctx,
		`UPDATE custom_domains
		 SET ssl_certificate_status = $1, status = $2, last_checked_at = $3, updated_at = now()
		 WHERE id = $4`,
		sslStatus, next, now, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("persist ssl check for %s: %w", d.ID, err)
	}

	if next == model.DomainStatusActive && d.Status != model.DomainStatusActive {
		if err := demoteOtherActive(ctx, s.db, d.BusinessID, d.ID); err != nil {
			return nil, err
		}
	}

	return &CheckResult{
		Success:              true,
		Domain:               d.Domain,
		SSLStatus:            nd.SSL.State,
		SSLCertificateStatus: sslStatus,
	}, nil
}

// Sweep checks every registered domain whose certificate is still pending or
// provisioning. Domains are processed sequentially and failures are isolated:
// one domain's error is recorded in its outcome and the sweep moves on.
func (s *SSLService) Sweep(ctx context.Context) (*SweepResult, error) {
	if s.registrar == nil {
		return nil, ErrRegistrarNotConfigured
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+domainColumns+` FROM custom_domains
		 WHERE netlify_domain_id IS NOT NULL AND ssl_certificate_status IN ($1, $2)
		 ORDER BY domain`,
		model.SSLStatusPending, model.SSLStatusProvisioning,
	)
	if err != nil {
		return nil, fmt.Errorf("list domains awaiting ssl: %w", err)
	}
	defer rows.Close()

	var domains []model.CustomDomain
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custom domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domains awaiting ssl: %w", err)
	}

	result := &SweepResult{Checked: len(domains), Results: make([]SweepOutcome, 0, len(domains))}
	for i := range domains {
		d := &domains[i]
		outcome := SweepOutcome{DomainID: d.ID, Domain: d.Domain}

		check, err := s.check(ctx, d)
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Updated = true
			outcome.SSLStatus = check.SSLCertificateStatus
		}
		result.Results = append(result.Results, outcome)
	}

	return result, nil
}
