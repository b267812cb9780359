package gateway

import (
	"context"
	"net/url"

	"github.com/fec-cms/console/internal/models"
)

type featureBody struct {
	Feature models.EditableFeature `json:"feature"`
}

// ListFeatures handles GET /features. Search matches on name.
func (c *Client) ListFeatures(ctx context.Context, p models.ListParams) (*models.List[models.Feature], error) {
	q := pageQuery(p.Current, p.PageSize, "", p.SortField, p.SortOrder)
	if p.Search != "" {
		q.Set("name", p.Search)
	}
	var out models.List[models.Feature]
	if err := c.get(ctx, "/features", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFeature handles GET /features/{id}.
func (c *Client) GetFeature(ctx context.Context, id string) (*models.Feature, error) {
	var out models.Feature
	if err := c.get(ctx, "/features/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFeature handles POST /features.
func (c *Client) CreateFeature(ctx context.Context, f models.EditableFeature) (*models.Feature, error) {
	var out models.Feature
	if err := c.post(ctx, "/features", featureBody{Feature: f}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFeature handles POST /features/{id}.
func (c *Client) UpdateFeature(ctx context.Context, id string, f models.EditableFeature) (*models.Feature, error) {
	var out models.Feature
	if err := c.post(ctx, "/features/"+url.PathEscape(id), featureBody{Feature: f}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFeature handles DELETE /features/{id}.
func (c *Client) DeleteFeature(ctx context.Context, id string) error {
	return c.delete(ctx, "/features/"+url.PathEscape(id), nil)
}
