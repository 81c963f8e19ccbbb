package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/domains")

	os.Unsetenv("TEMPORAL_ADDRESS")
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("DNS_RESOLVER_URL")
	os.Unsetenv("NETLIFY_API_BASE_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:7233", cfg.TemporalAddress)
	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://dns.google/resolve", cfg.DNSResolverURL)
	assert.Equal(t, "https://api.netlify.com/api/v1", cfg.NetlifyAPIBaseURL)
}

func TestLoad_AllEnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/domains")
	t.Setenv("TEMPORAL_ADDRESS", "temporal.example.com:7233")
	t.Setenv("HTTP_LISTEN_ADDR", ":7071")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DNS_RESOLVER_URL", "https://cloudflare-dns.com/dns-query")
	t.Setenv("EXPECTED_CNAME_TARGET", "edge.bookinghost.app")
	t.Setenv("NETLIFY_API_TOKEN", "token-1")
	t.Setenv("NETLIFY_SITE_ID", "site-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db:5432/domains", cfg.DatabaseURL)
	assert.Equal(t, "temporal.example.com:7233", cfg.TemporalAddress)
	assert.Equal(t, ":7071", cfg.HTTPListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://cloudflare-dns.com/dns-query", cfg.DNSResolverURL)
	assert.Equal(t, "edge.bookinghost.app", cfg.ExpectedCNAMETarget)
	assert.True(t, cfg.RegistrarConfigured())
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate("domains-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "EXPECTED_CNAME_TARGET")
}

func TestValidate_UnknownProgram(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/domains"}
	err := cfg.Validate("nope")
	require.Error(t, err)
}

func TestValidate_AllPresent(t *testing.T) {
	cfg := &Config{
		DatabaseURL:         "postgres://localhost/domains",
		ExpectedCNAMETarget: "edge.bookinghost.app",
	}
	assert.NoError(t, cfg.Validate("domains-api"))
	assert.NoError(t, cfg.Validate("worker"))
}

func TestRegistrarConfigured(t *testing.T) {
	cfg := &Config{NetlifyAPIToken: "token-1"}
	assert.False(t, cfg.RegistrarConfigured())

	cfg.NetlifySiteID = "site-1"
	assert.True(t, cfg.RegistrarConfigured())
}
