package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// Login exchanges credentials for a token. It is sent without a bearer token
// so a stale session never turns a bad password into a session expiry.
//
// A 403 becomes ErrAccountBanned, a 401 titled "Account disabled" becomes
// ErrAccountDisabled and any other 401 becomes ErrUnauthorized.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/users/login", in: creds, out: &resp})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			apiErr.kind = ErrAccountBanned
		}
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrUnexpected)
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/users/register", in: req})
}

func (c *HTTPClient) UserImages(ctx context.Context, userID int64) (*models.UserImages, error) {
	var out models.UserImages
	if err := c.get(ctx, fmt.Sprintf("/users/%d/images", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int64, in models.ProfileUpdate) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), in, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, userID int64, in models.PasswordChange) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password", userID), in, nil)
}
