package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_HappyPath(t *testing.T) {
	// pending -> verified -> provisioning -> active
	s, err := Transition(DomainStatusPending, EventDNSVerified)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusVerified, s)

	s, err = Transition(s, EventRegistered)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusProvisioning, s)

	s, err = Transition(s, EventSSLPending)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusProvisioning, s)

	s, err = Transition(s, EventSSLIssued)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusActive, s)
}

func TestTransition_AnyStateCanFail(t *testing.T) {
	for _, from := range []DomainStatus{DomainStatusPending, DomainStatusVerified, DomainStatusProvisioning, DomainStatusActive, DomainStatusFailed} {
		s, err := Transition(from, EventDNSCheckFailed)
		require.NoError(t, err, "from=%s", from)
		assert.Equal(t, DomainStatusFailed, s)

		s, err = Transition(from, EventRegistrationFailed)
		require.NoError(t, err, "from=%s", from)
		assert.Equal(t, DomainStatusFailed, s)
	}
}

func TestTransition_FailedRecoversViaVerification(t *testing.T) {
	s, err := Transition(DomainStatusFailed, EventDNSVerified)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusVerified, s)
}

func TestTransition_FailedIsRetryable(t *testing.T) {
	// A failed step can be retried directly: registration and SSL polling
	// both recover a failed domain.
	s, err := Transition(DomainStatusFailed, EventRegistered)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusProvisioning, s)

	s, err = Transition(DomainStatusFailed, EventSSLPending)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusProvisioning, s)

	s, err = Transition(DomainStatusFailed, EventSSLIssued)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusActive, s)
}

func TestTransition_ReverifyActiveKeepsActive(t *testing.T) {
	s, err := Transition(DomainStatusActive, EventDNSVerified)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusActive, s)
}

func TestTransition_RegisteredIsIdempotent(t *testing.T) {
	s, err := Transition(DomainStatusProvisioning, EventRegistered)
	require.NoError(t, err)
	assert.Equal(t, DomainStatusProvisioning, s)
}

func TestTransition_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from  DomainStatus
		event DomainEvent
	}{
		// Registration requires prior verification.
		{DomainStatusPending, EventRegistered},
		{DomainStatusActive, EventRegistered},
		// An active domain cannot slide back to provisioning without an
		// intervening failure.
		{DomainStatusActive, EventSSLPending},
		{DomainStatusPending, EventSSLIssued},
		{DomainStatusPending, EventSSLPending},
	}
	for _, tt := range tests {
		_, err := Transition(tt.from, tt.event)
		require.Error(t, err, "%s + %s", tt.from, tt.event)
		assert.Contains(t, err.Error(), "illegal transition")
	}
}

func TestTransition_UnknownEvent(t *testing.T) {
	_, err := Transition(DomainStatusPending, DomainEvent("bogus"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain event")
}

func TestSSLStatusFromPlatform(t *testing.T) {
	assert.Equal(t, SSLStatusActive, SSLStatusFromPlatform("issued"))
	assert.Equal(t, SSLStatusProvisioning, SSLStatusFromPlatform("provisioning"))
	assert.Equal(t, SSLStatusProvisioning, SSLStatusFromPlatform("dns_verified"))
	assert.Equal(t, SSLStatusProvisioning, SSLStatusFromPlatform(""))
}

func TestCustomDomain_Registered(t *testing.T) {
	d := &CustomDomain{}
	assert.False(t, d.Registered())

	empty := ""
	d.NetlifyDomainID = &empty
	assert.False(t, d.Registered())

	id := "netlify-dom-1"
	d.NetlifyDomainID = &id
	assert.True(t, d.Registered())
}
