package core

import (
	"context"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/bookhive/domains/internal/netlify"
)

// TaskQueue is the Temporal task queue all domain workflows run on.
const TaskQueue = "domains-tasks"

// DNSResolver looks up DNS records for a hostname. Implemented by doh.Client.
type DNSResolver interface {
	Lookup(ctx context.Context, name, recordType string) ([]string, error)
}

// Registrar is the hosting platform's custom-domain API. Implemented by
// netlify.Client.
type Registrar interface {
	CreateDomain(ctx context.Context, domain string) (*netlify.Domain, error)
	GetDomain(ctx context.Context, domainID string) (*netlify.Domain, error)
	DeleteDomain(ctx context.Context, domainID string) error
}

type Services struct {
	Business     *BusinessService
	Domain       *CustomDomainService
	Verification *VerificationService
	Registration *RegistrationService
	SSL          *SSLService
	Removal      *RemovalService
	APIKey       *APIKeyService
}

// NewServices wires the service layer. tc may be nil when no workflow engine
// is available (workers pass their own services without one); registrar may
// be nil when the Netlify credentials are not configured, in which case
// registrar-backed operations fail fast with ErrRegistrarNotConfigured.
func NewServices(db DB, tc temporalclient.Client, resolver DNSResolver, registrar Registrar, expectedCNAMETarget string) *Services {
	domain := NewCustomDomainService(db, tc)
	registration := NewRegistrationService(db, domain, registrar)

	return &Services{
		Business:     NewBusinessService(db),
		Domain:       domain,
		Verification: NewVerificationService(db, domain, registration, resolver, expectedCNAMETarget),
		Registration: registration,
		SSL:          NewSSLService(db, domain, registrar),
		Removal:      NewRemovalService(db, domain, registrar),
		APIKey:       NewAPIKeyService(db),
	}
}
