package gateway

import (
	"context"

	"github.com/fec-cms/console/internal/models"
)

// UploadSignature handles POST /upload/sign.
func (c *Client) UploadSignature(ctx context.Context, pathKey string) (*models.UploadSignature, error) {
	var out models.UploadSignature
	if err := c.post(ctx, "/upload/sign", map[string]string{"pathKey": pathKey}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CleanPageCache handles POST /cache/clean.
func (c *Client) CleanPageCache(ctx context.Context, path string) error {
	return c.post(ctx, "/cache/clean", map[string]string{"path": path}, nil)
}

// MapSuggestion handles POST /map/suggestion.
func (c *Client) MapSuggestion(ctx context.Context, region, keyword string) (*models.LocationSuggestion, error) {
	var out models.LocationSuggestion
	body := map[string]string{"region": region, "keyword": keyword}
	if err := c.post(ctx, "/map/suggestion", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
