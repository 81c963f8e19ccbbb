package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DomainVerifications counts DNS verification attempts by outcome
	// ("configured" or "failed").
	DomainVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_verifications_total",
			Help: "DNS verification attempts by outcome",
		},
		[]string{"outcome"},
	)

	// DomainRegistrations counts hosting platform registrations by outcome
	// ("success" or "failed").
	DomainRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_registrations_total",
			Help: "Hosting platform registrations by outcome",
		},
		[]string{"outcome"},
	)

	// SSLSweepChecked counts domains examined by bulk SSL sweeps.
	SSLSweepChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ssl_sweep_domains_checked_total",
			Help: "Domains examined by bulk SSL status sweeps",
		},
	)

	// SSLSweepErrors counts per-domain failures during bulk SSL sweeps.
	SSLSweepErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ssl_sweep_errors_total",
			Help: "Per-domain failures during bulk SSL status sweeps",
		},
	)
)
