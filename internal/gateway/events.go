package gateway

import (
	"context"
	"net/url"

	"github.com/fec-cms/console/internal/models"
)

type eventBody struct {
	Event models.EditableEvent `json:"event"`
}

// ListEvents handles GET /events.
func (c *Client) ListEvents(ctx context.Context, p models.EventListParams) (*models.List[models.Event], error) {
	q := pageQuery(p.Current, p.PageSize, p.Search, p.SortField, p.SortOrder)
	if p.OrgSearch != "" {
		q.Set("orgSearch", p.OrgSearch)
	}
	var out models.List[models.Event]
	if err := c.get(ctx, "/events", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEvent handles GET /events/{id}.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var out models.Event
	if err := c.get(ctx, "/events/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent handles POST /events.
func (c *Client) CreateEvent(ctx context.Context, e models.EditableEvent) (*models.Event, error) {
	var out models.Event
	if err := c.post(ctx, "/events", eventBody{Event: e}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEvent handles POST /events/{id}.
func (c *Client) UpdateEvent(ctx context.Context, id string, e models.EditableEvent) (*models.Event, error) {
	var out models.Event
	if err := c.post(ctx, "/events/"+url.PathEscape(id), eventBody{Event: e}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEvent handles DELETE /events/{id}.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.delete(ctx, "/events/"+url.PathEscape(id), nil)
}
