package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// SupportContact is public; it is fetched without a bearer token so it works
// for a banned user too.
func (c *HTTPClient) SupportContact(ctx context.Context) (*models.SupportContact, error) {
	var out models.SupportContact
	if err := c.do(ctx, call{method: http.MethodGet, path: "/settings/support", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSupportContact saves the support contact. See verifySupportContact
// for how an ambiguous failure is resolved.
func (c *HTTPClient) UpdateSupportContact(ctx context.Context, in models.SupportContact) error {
	err := c.send(ctx, http.MethodPut, "/settings/support", in, nil)
	if err != nil && retryable(err) {
		return c.verifySupportContact(ctx, in, err)
	}
	return err
}
