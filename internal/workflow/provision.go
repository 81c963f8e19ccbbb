package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/model"
)

const (
	// DNS propagation is slow; poll for up to an hour before giving up and
	// leaving the domain for manual re-verification.
	dnsCheckInterval = 2 * time.Minute
	dnsCheckAttempts = 30

	// Certificates usually issue within minutes of registration.
	sslCheckInterval = 30 * time.Second
	sslCheckAttempts = 40
)

// ProvisionDomainWorkflow drives a newly created custom domain toward active:
// it polls DNS verification until the customer's CNAME record is in place
// (verification also registers the domain with the hosting platform), then
// polls certificate issuance. Both loops are bounded; when they run out the
// workflow completes and the persisted domain state is left for the cron
// sweep or a manual re-verify to advance.
func ProvisionDomainWorkflow(ctx workflow.Context, domainID string) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 1 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:    3,
			InitialInterval:    1 * time.Second,
			MaximumInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	configured := false
	for attempt := 0; attempt < dnsCheckAttempts; attempt++ {
		var result core.VerifyResult
		if err := workflow.ExecuteActivity(ctx, "VerifyDomain", domainID).Get(ctx, &result); err != nil {
			return err
		}
		if result.Configured {
			configured = true
			break
		}

		logger.Info("DNS not configured yet", "domainID", domainID, "attempt", attempt+1)
		if err := workflow.Sleep(ctx, dnsCheckInterval); err != nil {
			return err
		}
	}
	if !configured {
		logger.Warn("giving up on DNS verification", "domainID", domainID)
		return nil
	}

	for attempt := 0; attempt < sslCheckAttempts; attempt++ {
		var result core.CheckResult
		err := workflow.ExecuteActivity(ctx, "CheckSSLStatus", domainID).Get(ctx, &result)
		if err != nil {
			// Registration can fail during verification; the check starts
			// succeeding once a later verify attempt registers the domain.
			logger.Warn("ssl check failed", "domainID", domainID, "error", err)
		} else if result.SSLCertificateStatus == model.SSLStatusActive {
			logger.Info("domain is active", "domainID", domainID)
			return nil
		}

		if err := workflow.Sleep(ctx, sslCheckInterval); err != nil {
			return err
		}
	}

	logger.Warn("certificate still not issued, leaving domain to the cron sweep", "domainID", domainID)
	return nil
}
