package core

import (
	"context"
	"fmt"

	"github.com/bookhive/domains/internal/model"
	"github.com/bookhive/domains/internal/netlify"
)

// RemovalService deregisters a domain from the hosting platform and deletes
// the local record. The platform deregistration must succeed (or the domain
// must already be gone upstream) before the local row is removed.
type RemovalService struct {
	db        DB
	domains   *CustomDomainService
	registrar Registrar
}

func NewRemovalService(db DB, domains *CustomDomainService, registrar Registrar) *RemovalService {
	return &RemovalService{db: db, domains: domains, registrar: registrar}
}

type RemoveResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	Message string `json:"message"`
}

// Remove deregisters the domain upstream and deletes it locally. A domain
// that was never registered is deleted locally without an upstream call. A
// 404 from the platform counts as success: the domain is already gone.
func (s *RemovalService) Remove(ctx context.Context, domainID string) (*RemoveResult, error) {
	d, err := s.domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	if !d.Registered() {
		if err := s.delete(ctx, d); err != nil {
			return nil, err
		}
		return &RemoveResult{
			Success: true,
			Domain:  d.Domain,
			Message: fmt.Sprintf("%s was never registered with the hosting platform; removed locally", d.Domain),
		}, nil
	}

	if s.registrar == nil {
		return nil, ErrRegistrarNotConfigured
	}

	msg := fmt.Sprintf("%s deregistered and removed", d.Domain)
	if err := s.registrar.DeleteDomain(ctx, *d.NetlifyDomainID); err != nil {
		if !netlify.IsNotFound(err) {
			return nil, fmt.Errorf("deregister %s: %w", d.Domain, err)
		}
		msg = fmt.Sprintf("%s was already removed from the hosting platform; removed locally", d.Domain)
	}

	if err := s.delete(ctx, d); err != nil {
		return nil, err
	}

	return &RemoveResult{Success: true, Domain: d.Domain, Message: msg}, nil
}

func (s *RemovalService) delete(ctx context.Context, d *model.CustomDomain) error {
	_, err := s.db.Exec(ctx, `DELETE FROM custom_domains WHERE id = $1`, d.ID)
	if err != nil {
		return fmt.Errorf("delete custom domain %s: %w", d.ID, err)
	}
	return nil
}
