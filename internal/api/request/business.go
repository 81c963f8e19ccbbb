package request

type CreateBusiness struct {
	Name      string `json:"name" validate:"required"`
	Subdomain string `json:"subdomain" validate:"required,subdomain"`
}
