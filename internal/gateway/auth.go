package gateway

import (
	"context"

	"github.com/fec-cms/console/internal/models"
)

// Login exchanges staff credentials for a backend token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var out models.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
