package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/bookhive/domains/internal/activity"
	"github.com/bookhive/domains/internal/config"
	"github.com/bookhive/domains/internal/core"
	"github.com/bookhive/domains/internal/db"
	"github.com/bookhive/domains/internal/doh"
	"github.com/bookhive/domains/internal/logging"
	"github.com/bookhive/domains/internal/metrics"
	"github.com/bookhive/domains/internal/netlify"
	"github.com/bookhive/domains/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	metrics.RegisterPgxPoolMetrics(pool)

	tc, err := temporalclient.Dial(temporalclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer tc.Close()

	resolver := doh.NewClient(cfg.DNSResolverURL)

	var registrar core.Registrar
	if cfg.RegistrarConfigured() {
		registrar = netlify.NewClient(cfg.NetlifyAPIBaseURL, cfg.NetlifyAPIToken, cfg.NetlifySiteID)
	} else {
		logger.Warn().Msg("netlify credentials not configured, registrar activities will fail")
	}

	// Activities run against the same service layer as the API. The worker
	// does not start workflows itself, so no workflow client is wired in.
	services := core.NewServices(pool, nil, resolver, registrar, cfg.ExpectedCNAMETarget)

	w := worker.New(tc, core.TaskQueue, worker.Options{})

	w.RegisterActivity(activity.NewDomain(services))

	w.RegisterWorkflow(workflow.ProvisionDomainWorkflow)
	w.RegisterWorkflow(workflow.SSLStatusMonitorWorkflow)

	if cfg.MetricsAddr != "" {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr)
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting metrics server")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	go func() {
		logger.Info().Str("taskQueue", core.TaskQueue).Msg("starting temporal worker")
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal().Err(err).Msg("worker failed")
		}
	}()

	// Register cron schedules. Errors for already-existing schedules are
	// ignored so that re-deploys do not fail.
	registerCronSchedules(ctx, tc, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down worker")
	cancel()
}

type cronSchedule struct {
	id       string
	cron     string
	workflow interface{}
}

func registerCronSchedules(ctx context.Context, tc temporalclient.Client, logger zerolog.Logger) {
	schedules := []cronSchedule{
		{
			id:       "ssl-status-monitor-cron",
			cron:     "*/15 * * * *",
			workflow: workflow.SSLStatusMonitorWorkflow,
		},
	}

	scheduleClient := tc.ScheduleClient()

	for _, s := range schedules {
		_, err := scheduleClient.Create(ctx, temporalclient.ScheduleOptions{
			ID: s.id,
			Spec: temporalclient.ScheduleSpec{
				CronExpressions: []string{s.cron},
			},
			Action: &temporalclient.ScheduleWorkflowAction{
				ID:        s.id,
				Workflow:  s.workflow,
				TaskQueue: core.TaskQueue,
			},
		})
		if err != nil {
			if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "AlreadyExists") {
				logger.Info().Str("id", s.id).Msg("cron schedule already exists, skipping")
			} else {
				logger.Fatal().Err(err).Str("id", s.id).Msg("failed to create cron schedule")
			}
		} else {
			logger.Info().Str("id", s.id).Str("cron", s.cron).Msg("created cron schedule")
		}
	}
}
