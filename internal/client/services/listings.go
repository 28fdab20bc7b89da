package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/listing"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

// DefaultRowsPerPage is the page size of the public feed.
const DefaultRowsPerPage = 12

// ErrNotPermitted means the viewer has no right to perform an action on a
// listing in its current state. It is decided locally, before any request.
var ErrNotPermitted = errors.New("action not permitted")

// ListingService is what members do with listings.
type ListingService interface {
	Browse(ctx context.Context, q models.ListingQuery) (*models.Page[models.ListingDetails], error)
	Details(ctx context.Context, viewer *models.User, id int64) (*models.ListingDetails, error)
	Mine(ctx context.Context, viewer *models.User, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error)
	ByUser(ctx context.Context, viewer *models.User, userID int64, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error)
	Create(ctx context.Context, viewer *models.User, in models.ListingInput) (*models.Listing, error)
	Edit(ctx context.Context, viewer *models.User, id int64, in models.ListingInput) error
	Delete(ctx context.Context, viewer *models.User, id int64) error
	Submit(ctx context.Context, viewer *models.User, id int64) error
	Review(ctx context.Context, viewer *models.User, id int64, rating int, text string) (*models.Review, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type listingService struct {
	api    client.ListingAPI
	logger logging.Logger
}

func NewListingService(api client.ListingAPI, logger logging.Logger) ListingService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &listingService{api: api, logger: logger.With("component", "listings")}
}

// Browse returns one page of the public feed. Anything not publicly visible
// is dropped even if the API returned it.
func (s *listingService) Browse(ctx context.Context, q models.ListingQuery) (*models.Page[models.ListingDetails], error) {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.RowsPerPage < 1 {
		q.RowsPerPage = DefaultRowsPerPage
	}
	q.Search = strings.TrimSpace(q.Search)

	page, err := s.api.Listings(ctx, q)
	if err != nil {
		return nil, err
	}

	visible := page.Items[:0]
	for _, it := range page.Items {
		if listing.IsPubliclyVisible(it.Status) {
			visible = append(visible, it)
			continue
		}
		s.logger.Debug(ctx, "hid non-public listing from feed", "post_id", it.PostID, "status", it.Status.String())
	}
	page.Items = visible
	return page, nil
}

// Details returns a listing. A listing that is not publicly visible is
// reported as not found unless the viewer owns it or is an admin.
func (s *listingService) Details(ctx context.Context, viewer *models.User, id int64) (*models.ListingDetails, error) {
	d, err := s.api.ListingDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.IsPubliclyVisible(d.Status) || isOwner(viewer, d) || models.IsAdmin(viewer) {
		return d, nil
	}
	return nil, fmt.Errorf("listing %d: %w", id, client.ErrNotFound)
}

func (s *listingService) Mine(ctx context.Context, viewer *models.User, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	return s.api.MyListings(ctx, pageNumber, rowsPerPage)
}

// ByUser returns one page of another member's listings. Listings that are not
// publicly visible are dropped unless the viewer is that member or an admin.
func (s *listingService) ByUser(ctx context.Context, viewer *models.User, userID int64, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error) {
	if userID < 1 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	page, err := s.api.UserListings(ctx, userID, pageNumber, rowsPerPage)
	if err != nil {
		return nil, err
	}
	if models.IsAdmin(viewer) || (viewer != nil && viewer.UserID == userID) {
		return page, nil
	}

	visible := page.Items[:0]
	for _, it := range page.Items {
		if listing.IsPubliclyVisible(it.Status) {
			visible = append(visible, it)
		}
	}
	page.Items = visible
	return page, nil
}

// Create posts a new listing. The API decides its initial status.
func (s *listingService) Create(ctx context.Context, viewer *models.User, in models.ListingInput) (*models.Listing, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	in.Status = nil
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.CreateListing(ctx, in)
}

func (s *listingService) Edit(ctx context.Context, viewer *models.User, id int64, in models.ListingInput) error {
	d, err := s.owned(ctx, viewer, id, listing.ActionEdit)
	if err != nil {
		return err
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Status != nil && *in.Status != d.Status && !listing.CanTransition(d.Status, *in.Status) {
		return fmt.Errorf("%w: %s to %s", ErrNotPermitted, d.Status, *in.Status)
	}
	return s.api.UpdateListing(ctx, id, in)
}

func (s *listingService) Delete(ctx context.Context, viewer *models.User, id int64) error {
	if _, err := s.owned(ctx, viewer, id, listing.ActionDelete); err != nil {
		return err
	}
	return s.api.DeleteListing(ctx, id)
}

// Submit sends the owner's listing for review, keeping its other fields.
func (s *listingService) Submit(ctx context.Context, viewer *models.User, id int64) error {
	if viewer == nil {
		return ErrNotAuthenticated
	}
	d, err := s.api.ListingDetails(ctx, id)
	if err != nil {
		return err
	}
	if !listing.CanSubmit(d.Status, isOwner(viewer, d)) {
		return fmt.Errorf("%w: submit listing in status %s", ErrNotPermitted, d.Status)
	}

	next := models.StatusPendingReview
	return s.api.UpdateListing(ctx, id, models.ListingInput{
		CategoryID:      d.CategoryID,
		PostTitle:       d.PostTitle,
		PostDescription: d.PostDescription,
		Price:           d.Price,
		Status:          &next,
	})
}

func (s *listingService) Review(ctx context.Context, viewer *models.User, id int64, rating int, text string) (*models.Review, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	in := models.ReviewInput{UserID: viewer.UserID, Rating: rating, ReviewText: strings.TrimSpace(text)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.AddReview(ctx, id, in)
}

func (s *listingService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.api.Categories(ctx)
}

// owned loads a listing and checks the viewer may perform a as its owner.
func (s *listingService) owned(ctx context.Context, viewer *models.User, id int64, a listing.Action) (*models.ListingDetails, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	d, err := s.api.ListingDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.OwnerActions(d.Status, isOwner(viewer, d)).Has(a) {
		return nil, fmt.Errorf("%w: %s listing %d", ErrNotPermitted, a, id)
	}
	return d, nil
}

func isOwner(viewer *models.User, d *models.ListingDetails) bool {
	if viewer == nil {
		return false
	}
	return viewer.UserID == d.UserID || (d.OwnerUserID != 0 && viewer.UserID == d.OwnerUserID)
}
