package client

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// Some API deployments apply a status or settings write and still answer with
// a 5xx or drop the connection. For those two writes the adapter re-reads the
// resource after such a failure and reports success when the change is
// visible. No other call and no caller above this package does this.

func (c *HTTPClient) verifyListingStatus(ctx context.Context, id int64, want models.ListingStatus, cause error) error {
	d, err := c.ListingDetails(ctx, id)
	if err != nil || d.Status != want {
		return cause
	}
	c.logger.Warn(ctx, "status write failed but change is visible", "post_id", id, "status", want.String(), "cause", cause)
	return nil
}

func (c *HTTPClient) verifySupportContact(ctx context.Context, want models.SupportContact, cause error) error {
	got, err := c.SupportContact(ctx)
	if err != nil {
		return cause
	}
	if !strings.EqualFold(got.SupportEmail, want.SupportEmail) || got.SupportWhatsApp != want.SupportWhatsApp {
		return cause
	}
	c.logger.Warn(ctx, "settings write failed but change is visible", "cause", cause)
	return nil
}
