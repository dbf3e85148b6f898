package company

import "time"

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Address string `json:"address" binding:"max=255"`
}

type AddSubnetRequest struct {
	CIDR  string `json:"cidr" binding:"required"`
	Label string `json:"label" binding:"max=64"`
}

type SubnetResponse struct {
	ID    string `json:"id"`
	CIDR  string `json:"cidr"`
	Label string `json:"label"`
}

type CompanyResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Address   string           `json:"address"`
	Subnets   []SubnetResponse `json:"subnets,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func toSubnetResponse(s Subnet) SubnetResponse {
	resp := SubnetResponse{ID: s.ID.String(), CIDR: s.CIDR}
	if s.Label != nil {
		resp.Label = *s.Label
	}
	return resp
}

func toCompanyResponse(c *Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
	if c.Address != nil {
		resp.Address = *c.Address
	}
	for _, s := range c.Subnets {
		resp.Subnets = append(resp.Subnets, toSubnetResponse(s))
	}
	return resp
}
