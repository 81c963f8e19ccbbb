package activity

import (
	"context"

	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/metrics"
)

// Domain contains the activities the provisioning workflows run. Each
// activity is a thin wrapper over the corresponding core service so that the
// HTTP API and the workflows share one implementation.
type Domain struct {
	services *core.Services
}

func NewDomain(services *core.Services) *Domain {
	return &Domain{services: services}
}

// VerifyDomain runs one DNS verification attempt for the domain.
func (a *Domain) VerifyDomain(ctx context.Context, domainID string) (*core.VerifyResult, error) {
	result, err := a.services.Verification.Verify(ctx, domainID)
	if err != nil {
		return nil, err
	}

	outcome := "failed"
	if result.Configured {
		outcome = "configured"
	}
	metrics.DomainVerifications.WithLabelValues(outcome).Inc()
	return result, nil
}

// CheckSSLStatus fetches the certificate state for one registered domain.
func (a *Domain) CheckSSLStatus(ctx context.Context, domainID string) (*core.CheckResult, error) {
	return a.services.SSL.Check(ctx, domainID)
}

// SweepSSLStatus checks every domain still waiting on certificate issuance.
func (a *Domain) SweepSSLStatus(ctx context.Context) (*core.SweepResult, error) {
	result, err := a.services.SSL.Sweep(ctx)
	if err != nil {
		return nil, err
	}

	metrics.SSLSweepChecked.Add(float64(result.Checked))
	for _, o := range result.Results {
		if o.Error != "" {
			metrics.SSLSweepErrors.Inc()
		}
	}
	return result, nil
}
