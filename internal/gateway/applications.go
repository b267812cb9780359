package gateway

import (
	"context"

	"github.com/fec-cms/console/internal/models"
)

// ListApplications handles GET /applications.
func (c *Client) ListApplications(ctx context.Context, p models.ListParams) (*models.List[models.Application], error) {
	var out models.List[models.Application]
	if err := c.get(ctx, "/applications", pageQuery(p.Current, p.PageSize, p.Search, p.SortField, p.SortOrder), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
