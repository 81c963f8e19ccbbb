package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL     string
	TemporalAddress string
	HTTPListenAddr  string
	MetricsAddr     string
	LogLevel        string
	ServiceName     string

	// DNSResolverURL is the DNS-over-HTTPS JSON endpoint queried during
	// domain verification.
	DNSResolverURL string
	// ExpectedCNAMETarget is the hostname customer CNAME records must point
	// at for a custom domain to verify.
	ExpectedCNAMETarget string

	// Netlify domain API credentials. When empty, registrar and SSL-poller
	// operations fail fast without calling the API.
	NetlifyAPIToken   string
	NetlifySiteID     string
	NetlifyAPIBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		TemporalAddress:     getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		HTTPListenAddr:      getEnv("HTTP_LISTEN_ADDR", ":8090"),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ServiceName:         getEnv("SERVICE_NAME", ""),
		DNSResolverURL:      getEnv("DNS_RESOLVER_URL", "https://dns.google/resolve"),
		ExpectedCNAMETarget: getEnv("EXPECTED_CNAME_TARGET", ""),
		NetlifyAPIToken:     getEnv("NETLIFY_API_TOKEN", ""),
		NetlifySiteID:       getEnv("NETLIFY_SITE_ID", ""),
		NetlifyAPIBaseURL:   getEnv("NETLIFY_API_BASE_URL", "https://api.netlify.com/api/v1"),
	}

	return cfg, nil
}

// Validate checks that the settings required by the given program are set.
func (c *Config) Validate(program string) error {
	var missing []string

	switch program {
	case "domains-api", "worker":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if c.ExpectedCNAMETarget == "" {
			missing = append(missing, "EXPECTED_CNAME_TARGET")
		}
	default:
		return fmt.Errorf("unknown program %q", program)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration for %s: %v", program, missing)
	}
	return nil
}

// RegistrarConfigured reports whether the Netlify domain API credentials are
// present.
func (c *Config) RegistrarConfigured() bool {
	return c.NetlifyAPIToken != "" && c.NetlifySiteID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
