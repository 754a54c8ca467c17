package api

import (
	"context"
	"net/http"

	"github.com/certipro/certipro-cli/internal"
)

type profileResponse struct {
	Role                  string `json:"role"`
	FullName              string `json:"full_name"`
	OrganizationName      string `json:"organization_name"`
	CertificationBodyName string `json:"certification_body_name"`
}

// Profile fetches the logged-in user's profile. The role is normalized here
// so qualified enum values never leave the network boundary.
func (c *Client) Profile(ctx context.Context) (*internal.UserProfile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp profileResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}

	return &internal.UserProfile{
		Role:                  internal.NormalizeRole(resp.Role),
		Name:                  resp.FullName,
		OrganizationName:      resp.OrganizationName,
		CertificationBodyName: resp.CertificationBodyName,
	}, nil
}
