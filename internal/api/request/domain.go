package request

type CreateDomain struct {
	Domain string `json:"domain" validate:"required,fqdn"`
}
