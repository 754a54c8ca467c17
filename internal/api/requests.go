package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/certipro/certipro-cli/internal"
)

// rawRequest is the wire shape shared by both pipelines. Which name field
// is populated depends on the endpoint; id-like and updated_at fields are
// not carried into the domain model.
type rawRequest struct {
	ID                    string `json:"id"`
	OrganizationName      string `json:"organization_name"`
	CertificationBodyName string `json:"certification_body_name"`
	Description           string `json:"description"`
	Address               string `json:"address"`
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
	Status                string `json:"status"`
	AdminComment          string `json:"admin_comment"`
	CreatedAt             string `json:"created_at"`
}

func (r rawRequest) toRequest(typ internal.RequestType) internal.Request {
	req := internal.Request{
		ID:     r.ID,
		Type:   typ,
		Status: internal.ParseStatus(r.Status),
	}
	switch typ {
	case internal.TypeCertificationBody:
		req.CertificationBody = &internal.CertificationBodyRequestData{
			CertificationBodyName: r.CertificationBodyName,
			Address:               r.Address,
			ContactEmail:          r.ContactEmail,
			ContactPhone:          r.ContactPhone,
			AdminComment:          r.AdminComment,
			CreatedAt:             r.CreatedAt,
		}
	default:
		req.Organization = &internal.OrganizationRequestData{
			OrganizationName: r.OrganizationName,
			Description:      r.Description,
			Address:          r.Address,
			ContactEmail:     r.ContactEmail,
			ContactPhone:     r.ContactPhone,
			AdminComment:     r.AdminComment,
			CreatedAt:        r.CreatedAt,
		}
	}
	return req
}

func (c *Client) listRequests(ctx context.Context, path, name string, typ internal.RequestType) ([]internal.Request, error) {
	var query url.Values
	if name != "" {
		query = url.Values{"name": {name}}
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var raw []rawRequest
	if err := c.doJSON(req, &raw); err != nil {
		return nil, err
	}

	requests := make([]internal.Request, 0, len(raw))
	for _, r := range raw {
		requests = append(requests, r.toRequest(typ))
	}
	return requests, nil
}

// OrganizationRequests lists organization creation requests, optionally
// scoped to one organization name.
func (c *Client) OrganizationRequests(ctx context.Context, name string) ([]internal.Request, error) {
	return c.listRequests(ctx, "/organization/requests/view", name, internal.TypeOrganization)
}

// CertificationBodyRequests lists certification-body creation requests,
// optionally scoped to one certification-body name.
func (c *Client) CertificationBodyRequests(ctx context.Context, name string) ([]internal.Request, error) {
	return c.listRequests(ctx, "/certification_body/requests/view", name, internal.TypeCertificationBody)
}

// CreateOrganizationRequest submits a new organization creation request
func (c *Client) CreateOrganizationRequest(ctx context.Context, payload internal.OrganizationRequestPayload) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/organization/requests/create", nil, payload)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// CreateCertificationBodyRequest submits a new certification-body creation request
func (c *Client) CreateCertificationBodyRequest(ctx context.Context, payload internal.CertificationBodyRequestPayload) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/certification_body/requests/create", nil, payload)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

type reviewRequest struct {
	ID           string `json:"id"`
	AdminComment string `json:"admin_comment"`
}

// ReviewRequest approves or rejects a request in its originating pipeline.
// action must be "approve" or "reject".
func (c *Client) ReviewRequest(ctx context.Context, typ internal.RequestType, action, id, comment string) error {
	if action != "approve" && action != "reject" {
		return fmt.Errorf("invalid review action: %q", action)
	}

	path := "/organization/requests/" + action
	if typ == internal.TypeCertificationBody {
		path = "/certification_body/requests/" + action
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, reviewRequest{
		ID:           id,
		AdminComment: comment,
	})
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
