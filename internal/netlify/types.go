package netlify

// Domain is the hosting platform's view of a custom domain bound to a site.
type Domain struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	SiteID string  `json:"site_id"`
	SSL    SSLInfo `json:"ssl"`
}

// SSLInfo reports certificate issuance state. State is "issued" once the
// certificate is active; before that the platform reports transient states
// like "pending" or "provisioning".
type SSLInfo struct {
	State string `json:"state"`
}
