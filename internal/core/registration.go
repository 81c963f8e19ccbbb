package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookhive/domains/internal/model"
	"github.com/bookhive/domains/internal/netlify"
)

// RegistrationService registers verified domains with the hosting platform.
type RegistrationService struct {
	db        DB
	domains   *CustomDomainService
	registrar Registrar
}

func NewRegistrationService(db DB, domains *CustomDomainService, registrar Registrar) *RegistrationService {
	return &RegistrationService{db: db, domains: domains, registrar: registrar}
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	Success         bool            `json:"success"`
	NetlifyDomainID string          `json:"netlify_domain_id,omitempty"`
	SSLStatus       model.SSLStatus `json:"ssl_status,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Register submits the domain to the hosting platform. It fails fast with
// ErrDNSNotConfigured before any network call when verification has not
// passed. Platform rejections are persisted (status=failed plus the API
// message) and returned as an error for the caller to surface.
func (s *RegistrationService) Register(ctx context.Context, domainID string) (*RegisterResult, error) {
	if s.registrar == nil {
		return nil, ErrRegistrarNotConfigured
	}

	d, err := s.domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	if !d.DNSConfigured {
		return nil, ErrDNSNotConfigured
	}

	nd, err := s.registrar.CreateDomain(ctx, d.Domain)
	if err != nil {
		apiMsg := err.Error()
		var apiErr *netlify.APIError
		if errors.As(err, &apiErr) {
			apiMsg = apiErr.Message
		}
		msg := fmt.Sprintf("registering %s with the hosting platform failed: %s", d.Domain, apiMsg)
		if persistErr := s.failRegistration(ctx, d, apiMsg, msg); persistErr != nil {
			return nil, persistErr
		}
		return nil, fmt.Errorf("register %s: %w", d.Domain, err)
	}

	sslStatus := model.SSLStatusFromPlatform(nd.SSL.State)
	event := model.EventRegistered
	if sslStatus == model.SSLStatusActive {
		// The platform can report the certificate as already issued in the
		// registration response.
		event = model.EventSSLIssued
	}

	next, err := model.Transition(d.Status, event)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = s.db.Exec(ctx,
		`UPDATE custom_domains
		 SET netlify_domain_id = $1, provisioned_at = $2, status = $3,
		     ssl_certificate_status = $4, error_message = NULL, netlify_api_error = NULL,
		     updated_at = now()
		 WHERE id = $5`,
		nd.ID, now, next, sslStatus, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("persist registration for %s: %w", d.ID, err)
	}

	if next == model.DomainStatusActive {
		if err := demoteOtherActive(ctx, s.db, d.BusinessID, d.ID); err != nil {
			return nil, err
		}
	}

	return &RegisterResult{Success: true, NetlifyDomainID: nd.ID, SSLStatus: sslStatus}, nil
}

func (s *RegistrationService) failRegistration(ctx context.Context, d *model.CustomDomain, apiMsg, msg string) error {
	next, err := model.Transition(d.Status, model.EventRegistrationFailed)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx,
		`UPDATE custom_domains
		 SET status = $1, netlify_api_error = $2, error_message = $3, updated_at = now()
		 WHERE id = $4`,
		next, apiMsg, msg, d.ID,
	)
	if err != nil {
		return fmt.Errorf("persist registration failure for %s: %w", d.ID, err)
	}
	return nil
}
