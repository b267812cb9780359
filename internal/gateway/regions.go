package gateway

import (
	"context"
	"net/url"

	"github.com/fec-cms/console/internal/models"
)

type regionBody struct {
	Region models.EditableRegion `json:"region"`
}

// ListRegions handles GET /regions. Search matches on code.
func (c *Client) ListRegions(ctx context.Context, p models.ListParams) (*models.List[models.Region], error) {
	q := pageQuery(p.Current, p.PageSize, "", p.SortField, p.SortOrder)
	if p.Search != "" {
		q.Set("code", p.Search)
	}
	var out models.List[models.Region]
	if err := c.get(ctx, "/regions", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRegion handles GET /regions/{id}.
func (c *Client) GetRegion(ctx context.Context, id string) (*models.Region, error) {
	var out models.Region
	if err := c.get(ctx, "/regions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRegion handles POST /regions.
func (c *Client) CreateRegion(ctx context.Context, r models.EditableRegion) (*models.Region, error) {
	var out models.Region
	if err := c.post(ctx, "/regions", regionBody{Region: r}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRegion handles POST /regions/{id}.
func (c *Client) UpdateRegion(ctx context.Context, id string, r models.EditableRegion) (*models.Region, error) {
	var out models.Region
	if err := c.post(ctx, "/regions/"+url.PathEscape(id), regionBody{Region: r}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRegion handles DELETE /regions/{id}.
func (c *Client) DeleteRegion(ctx context.Context, id string) error {
	return c.delete(ctx, "/regions/"+url.PathEscape(id), nil)
}
