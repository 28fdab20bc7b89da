package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

func listingQuery(q models.ListingQuery) url.Values {
	v := url.Values{}
	if q.PageNumber > 0 {
		v.Set("pageNumber", strconv.Itoa(q.PageNumber))
	}
	if q.RowsPerPage > 0 {
		v.Set("rowsPerPage", strconv.Itoa(q.RowsPerPage))
	}
	if q.CategoryID > 0 {
		v.Set("categoryID", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.UserID > 0 {
		v.Set("userID", strconv.FormatInt(q.UserID, 10))
	}
	return v
}

func (c *HTTPClient) Listings(ctx context.Context, q models.ListingQuery) (*models.Page[models.ListingDetails], error) {
	var page models.Page[models.ListingDetails]
	if err := c.get(ctx, "/posts/paginated", listingQuery(q), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) MyListings(ctx context.Context, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error) {
	var page models.Page[models.Listing]
	q := listingQuery(models.ListingQuery{PageNumber: pageNumber, RowsPerPage: rowsPerPage})
	if err := c.get(ctx, "/posts/my", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserListings is one page of another user's listings.
func (c *HTTPClient) UserListings(ctx context.Context, userID int64, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error) {
	var page models.Page[models.Listing]
	q := listingQuery(models.ListingQuery{PageNumber: pageNumber, RowsPerPage: rowsPerPage})
	if err := c.get(ctx, fmt.Sprintf("/posts/user/%d", userID), q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) ListingDetails(ctx context.Context, id int64) (*models.ListingDetails, error) {
	var d models.ListingDetails
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/details", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) CreateListing(ctx context.Context, in models.ListingInput) (*models.Listing, error) {
	var l models.Listing
	if err := c.send(ctx, http.MethodPost, "/posts", in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) UpdateListing(ctx context.Context, id int64, in models.ListingInput) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), in, nil)
}

func (c *HTTPClient) DeleteListing(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

func (c *HTTPClient) AddReview(ctx context.Context, listingID int64, in models.ReviewInput) (*models.Review, error) {
	var r models.Review
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/reviews", listingID), in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
