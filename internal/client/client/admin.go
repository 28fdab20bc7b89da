package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

type categoryPayload struct {
	CategoryName string `json:"categoryName"`
}

func includeDeleted(v bool) url.Values {
	return url.Values{"includeDeleted": []string{strconv.FormatBool(v)}}
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	if err := c.get(ctx, "/admin/dashboard", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Users(ctx context.Context, withDeleted bool) ([]models.User, error) {
	var out struct {
		Users      []models.User `json:"users"`
		TotalCount int           `json:"totalCount"`
	}
	if err := c.get(ctx, "/admin/users", includeDeleted(withDeleted), &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *HTTPClient) UserDetails(ctx context.Context, userID int64) (*models.UserDetails, error) {
	var out models.UserDetails
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreUser undoes a soft delete.
func (c *HTTPClient) RestoreUser(ctx context.Context, userID int64) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/restore", userID), nil, nil)
}

// PurgeUser deletes an account permanently.
func (c *HTTPClient) PurgeUser(ctx context.Context, userID int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d/permanent", userID), nil, nil)
}

func (c *HTTPClient) UpdateUserStatus(ctx context.Context, userID int64, change models.StatusChange) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/status", userID), change, nil)
}

func (c *HTTPClient) UpdateUserRole(ctx context.Context, userID int64, role models.Role) error {
	payload := struct {
		RoleID models.Role `json:"roleID"`
	}{RoleID: role}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", userID), payload, nil)
}

func (c *HTTPClient) AdminListings(ctx context.Context, withDeleted bool) ([]models.Listing, error) {
	var out struct {
		Posts      []models.Listing `json:"posts"`
		TotalCount int              `json:"totalCount"`
	}
	if err := c.get(ctx, "/admin/posts", includeDeleted(withDeleted), &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// UpdateListingStatus changes a listing's status. See verifyListingStatus for
// how an ambiguous failure is resolved.
func (c *HTTPClient) UpdateListingStatus(ctx context.Context, id int64, status models.ListingStatus, reason string) error {
	change := models.StatusChange{Status: int(status), Reason: reason}
	err := c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/posts/%d/status", id), change, nil)
	if err != nil && retryable(err) {
		return c.verifyListingStatus(ctx, id, status, err)
	}
	return err
}

func (c *HTTPClient) AdminDeleteListing(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/posts/%d", id), nil, nil)
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var out models.Category
	if err := c.send(ctx, http.MethodPost, "/categories", categoryPayload{CategoryName: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id int64, name string) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), categoryPayload{CategoryName: name}, nil)
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}
