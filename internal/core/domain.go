package core

import (
	"context"
	"fmt"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/bookhive/domains/internal/model"
)

const domainColumns = `id, domain, business_id, status, dns_configured, netlify_domain_id,
	ssl_certificate_status, verified_at, provisioned_at, last_checked_at,
	error_message, netlify_api_error, created_at, updated_at`

type CustomDomainService struct {
	db DB
	tc temporalclient.Client
}

func NewCustomDomainService(db DB, tc temporalclient.Client) *CustomDomainService {
	return &CustomDomainService{db: db, tc: tc}
}

// Create inserts a pending domain and, when a workflow engine is wired,
// starts the provisioning workflow that polls DNS and SSL until the domain
// goes active.
func (s *CustomDomainService) Create(ctx context.Context, d *model.CustomDomain) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO custom_domains (id, domain, business_id, status, dns_configured, ssl_certificate_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.Domain, d.BusinessID, d.Status, d.DNSConfigured, d.SSLCertificateStatus,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert custom domain: %w", err)
	}

	if s.tc != nil {
		workflowID := fmt.Sprintf("domain-%s", d.ID)
		_, err = s.tc.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: TaskQueue,
		}, "ProvisionDomainWorkflow", d.ID)
		if err != nil {
			return fmt.Errorf("start ProvisionDomainWorkflow: %w", err)
		}
	}

	return nil
}

func (s *CustomDomainService) GetByID(ctx context.Context, id string) (*model.CustomDomain, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+domainColumns+` FROM custom_domains WHERE id = $1`, id,
	)
	d, err := scanDomain(row)
	if err != nil {
		return nil, fmt.Errorf("get custom domain %s: %w", id, err)
	}
	return &d, nil
}

func (s *CustomDomainService) ListByBusiness(ctx context.Context, businessID string) ([]model.CustomDomain, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+domainColumns+` FROM custom_domains WHERE business_id = $1 ORDER BY domain`, businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("list custom domains for business %s: %w", businessID, err)
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
		return nil, fmt.Errorf("iterate custom domains: %w", err)
	}
	return domains, nil
}

func scanDomain(row interface{ Scan(dest ...any) error }) (model.CustomDomain, error) {
	var d model.CustomDomain
	err := row.Scan(&d.ID, &d.Domain, &d.BusinessID, &d.Status, &d.DNSConfigured,
		&d.NetlifyDomainID, &d.SSLCertificateStatus, &d.VerifiedAt, &d.ProvisionedAt,
		&d.LastCheckedAt, &d.ErrorMessage, &d.NetlifyAPIError, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// demoteOtherActive enforces at most one active domain per business: when a
// domain goes active, any other active domain of the same business drops back
// to verified (last activation wins).
func demoteOtherActive(ctx context.Context, db DB, businessID, keepID string) error {
	_, err := db.Exec(ctx,
		`UPDATE custom_domains SET status = $1, updated_at = now()
		 WHERE business_id = $2 AND status = $3 AND id <> $4`,
		model.DomainStatusVerified, businessID, model.DomainStatusActive, keepID,
	)
	if err != nil {
		return fmt.Errorf("demote other active domains for business %s: %w", businessID, err)
	}
	return nil
}
