package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

func (c *HTTPClient) Phones(ctx context.Context, userID int64) (*models.PhoneList, error) {
	var out models.PhoneList
	if err := c.get(ctx, fmt.Sprintf("/users/%d/phones", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddPhone(ctx context.Context, userID int64, in models.PhoneInput) (*models.Phone, error) {
	var out models.Phone
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("/users/%d/phones", userID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePhone(ctx context.Context, userID, phoneID int64, in models.PhoneUpdate) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/users/%d/phones/%d", userID, phoneID), in, nil)
}

func (c *HTTPClient) DeletePhone(ctx context.Context, userID, phoneID int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/phones/%d", userID, phoneID), nil, nil)
}
