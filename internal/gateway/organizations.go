package gateway

import (
	"context"
	"net/url"

	"github.com/fec-cms/console/internal/models"
)

type organizationBody struct {
	Organization models.EditableOrganization `json:"organization"`
}

// ListOrganizations handles GET /organizations. Search matches on name.
func (c *Client) ListOrganizations(ctx context.Context, p models.ListParams) (*models.List[models.Organization], error) {
	q := pageQuery(p.Current, p.PageSize, "", p.SortField, p.SortOrder)
	if p.Search != "" {
		q.Set("name", p.Search)
	}
	var out models.List[models.Organization]
	if err := c.get(ctx, "/organizations", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrganization handles GET /organizations/{id}.
func (c *Client) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	var out models.Organization
	if err := c.get(ctx, "/organizations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrganization handles POST /organizations.
func (c *Client) CreateOrganization(ctx context.Context, o models.EditableOrganization) (*models.Organization, error) {
	var out models.Organization
	if err := c.post(ctx, "/organizations", organizationBody{Organization: o}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrganization handles POST /organizations/{id}.
func (c *Client) UpdateOrganization(ctx context.Context, id string, o models.EditableOrganization) (*models.Organization, error) {
	var out models.Organization
	if err := c.post(ctx, "/organizations/"+url.PathEscape(id), organizationBody{Organization: o}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrganization handles DELETE /organizations/{id}.
func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.delete(ctx, "/organizations/"+url.PathEscape(id), nil)
}
