package model

import "time"

type CustomDomain struct {
	ID         string `json:"id" db:"id"`
	Domain     string `json:"domain" db:"domain"`
	BusinessID string `json:"business_id" db:"business_id"`

	Status        DomainStatus `json:"status" db:"status"`
	DNSConfigured bool         `json:"dns_configured" db:"dns_configured"`

	// NetlifyDomainID is the external identifier assigned by the hosting
	// platform once the domain is registered. Nil until registration
	// succeeds.
	NetlifyDomainID      *string   `json:"netlify_domain_id,omitempty" db:"netlify_domain_id"`
	SSLCertificateStatus SSLStatus `json:"ssl_certificate_status" db:"ssl_certificate_status"`

	VerifiedAt    *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	ProvisionedAt *time.Time `json:"provisioned_at,omitempty" db:"provisioned_at"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty" db:"last_checked_at"`

	ErrorMessage    *string `json:"error_message,omitempty" db:"error_message"`
	NetlifyAPIError *string `json:"netlify_api_error,omitempty" db:"netlify_api_error"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Registered reports whether the domain has ever been registered with the
// hosting platform.
func (d *CustomDomain) Registered() bool {
	return d.NetlifyDomainID != nil && *d.NetlifyDomainID != ""
}
