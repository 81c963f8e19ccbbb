package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/bookhive/domains/internal/core"
)

// SSLStatusMonitorWorkflow runs on a cron schedule and sweeps every
// registered domain still waiting on certificate issuance. Per-domain
// failures are recorded in the sweep result and do not fail the workflow.
func SSLStatusMonitorWorkflow(ctx workflow.Context) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	var result core.SweepResult
	if err := workflow.ExecuteActivity(ctx, "SweepSSLStatus").Get(ctx, &result); err != nil {
		return err
	}

	failed := 0
	for _, o := range result.Results {
		if o.Error != "" {
			failed++
			logger.Warn("sweep check failed", "domain", o.Domain, "error", o.Error)
		}
	}
	logger.Info("ssl sweep finished", "checked", result.Checked, "failed", failed)
	return nil
}
