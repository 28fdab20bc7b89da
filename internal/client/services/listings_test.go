package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(id, owner int64, s models.ListingStatus) *models.ListingDetails {
	return &models.ListingDetails{
		Listing: models.Listing{
			PostID: id, UserID: owner, CategoryID: 3,
			PostTitle: "Bike", PostDescription: "Red bike", Price: 40, Status: s,
		},
		OwnerUserID: owner,
	}
}

var (
	owner    = &models.User{UserID: 10, Username: "owner", RoleID: models.RoleUser}
	stranger = &models.User{UserID: 11, Username: "other", RoleID: models.RoleUser}
	admin    = &models.User{UserID: 1, Username: "root", RoleID: models.RoleAdmin}
	mod      = &models.User{UserID: 2, Username: "mod", RoleID: models.RoleModerator}
)

func TestListings_Browse_DefaultsAndHidesNonPublic(t *testing.T) {
	var gotQ models.ListingQuery
	api := &fakeAPI{ListingsFn: func(q models.ListingQuery) (*models.Page[models.ListingDetails], error) {
		gotQ = q
		return &models.Page[models.ListingDetails]{Items: []models.ListingDetails{
			*details(1, 10, models.StatusActive),
			*details(2, 10, models.StatusPendingReview),
			*details(3, 10, models.ListingStatus(42)),
			*details(4, 10, models.StatusActive),
		}}, nil
	}}
	svc := NewListingService(api, nil)

	page, err := svc.Browse(context.Background(), models.ListingQuery{Search: "  bike "})
	require.NoError(t, err)

	assert.Equal(t, 1, gotQ.PageNumber)
	assert.Equal(t, DefaultRowsPerPage, gotQ.RowsPerPage)
	assert.Equal(t, "bike", gotQ.Search)

	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(1), page.Items[0].PostID)
	assert.Equal(t, int64(4), page.Items[1].PostID)
}

func TestListings_Details_Visibility(t *testing.T) {
	tests := []struct {
		name    string
		status  models.ListingStatus
		viewer  *models.User
		visible bool
	}{
		{"active anonymous", models.StatusActive, nil, true},
		{"draft anonymous", models.StatusDraft, nil, false},
		{"pending stranger", models.StatusPendingReview, stranger, false},
		{"pending owner", models.StatusPendingReview, owner, true},
		{"rejected admin", models.StatusRejected, admin, true},
		{"rejected moderator", models.StatusRejected, mod, false},
		{"unknown stranger", models.ListingStatus(9), stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{DetailsFn: func(id int64) (*models.ListingDetails, error) {
				return details(id, owner.UserID, tt.status), nil
			}}
			d, err := NewListingService(api, nil).Details(context.Background(), tt.viewer, 5)
			if tt.visible {
				require.NoError(t, err)
				assert.Equal(t, int64(5), d.PostID)
				return
			}
			require.ErrorIs(t, err, client.ErrNotFound)
			assert.Nil(t, d)
		})
	}
}

func TestListings_EditDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	var updated, deleted []int64
	api := &fakeAPI{
		DetailsFn: func(id int64) (*models.ListingDetails, error) {
			return details(id, owner.UserID, models.StatusActive), nil
		},
		UpdateListingFn: func(id int64, _ models.ListingInput) error { updated = append(updated, id); return nil },
		DeleteListingFn: func(id int64) error { deleted = append(deleted, id); return nil },
	}
	svc := NewListingService(api, nil)
	in := models.ListingInput{CategoryID: 3, PostTitle: "Bike", PostDescription: "Blue now", Price: 35}

	require.ErrorIs(t, svc.Edit(ctx, stranger, 5, in), ErrNotPermitted)
	require.ErrorIs(t, svc.Delete(ctx, stranger, 5), ErrNotPermitted)
	require.ErrorIs(t, svc.Delete(ctx, admin, 5), ErrNotPermitted, "admins delete through moderation")
	require.ErrorIs(t, svc.Edit(ctx, nil, 5, in), ErrNotAuthenticated)

	require.NoError(t, svc.Edit(ctx, owner, 5, in))
	require.NoError(t, svc.Delete(ctx, owner, 5))
	assert.Equal(t, []int64{5}, updated)
	assert.Equal(t, []int64{5}, deleted)
}

func TestListings_Edit_RejectsIllegalStatusChange(t *testing.T) {
	api := &fakeAPI{
		DetailsFn: func(id int64) (*models.ListingDetails, error) {
			return details(id, owner.UserID, models.StatusDraft), nil
		},
	}
	sold := models.StatusSold
	err := NewListingService(api, nil).Edit(context.Background(), owner, 5, models.ListingInput{
		CategoryID: 3, PostTitle: "Bike", PostDescription: "x", Status: &sold,
	})
	require.ErrorIs(t, err, ErrNotPermitted)
	assert.NotContains(t, api.calls, "UpdateListing")
}

func TestListings_Edit_ValidatesInput(t *testing.T) {
	api := &fakeAPI{
		DetailsFn: func(id int64) (*models.ListingDetails, error) {
			return details(id, owner.UserID, models.StatusDraft), nil
		},
	}
	err := NewListingService(api, nil).Edit(context.Background(), owner, 5, models.ListingInput{PostTitle: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListings_Submit(t *testing.T) {
	ctx := context.Background()
	status := models.StatusDraft
	var sent models.ListingInput
	api := &fakeAPI{
		DetailsFn:       func(id int64) (*models.ListingDetails, error) { return details(id, owner.UserID, status), nil },
		UpdateListingFn: func(_ int64, in models.ListingInput) error { sent = in; return nil },
	}
	svc := NewListingService(api, nil)

	require.ErrorIs(t, svc.Submit(ctx, stranger, 5), ErrNotPermitted)

	require.NoError(t, svc.Submit(ctx, owner, 5))
	require.NotNil(t, sent.Status)
	assert.Equal(t, models.StatusPendingReview, *sent.Status)
	assert.Equal(t, "Bike", sent.PostTitle)

	status = models.StatusActive
	require.ErrorIs(t, svc.Submit(ctx, owner, 5), ErrNotPermitted)
}

func TestListings_CreateClearsStatus(t *testing.T) {
	var sent models.ListingInput
	api := &fakeAPI{CreateListingFn: func(in models.ListingInput) (*models.Listing, error) {
		sent = in
		return &models.Listing{PostID: 99, Status: models.StatusDraft}, nil
	}}
	svc := NewListingService(api, nil)
	active := models.StatusActive

	_, err := svc.Create(context.Background(), nil, models.ListingInput{})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	l, err := svc.Create(context.Background(), owner, models.ListingInput{
		CategoryID: 3, PostTitle: "Lamp", PostDescription: "Desk lamp", Price: 5, Status: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), l.PostID)
	assert.Nil(t, sent.Status)
}

func TestListings_Review(t *testing.T) {
	var sent models.ReviewInput
	api := &fakeAPI{AddReviewFn: func(_ int64, in models.ReviewInput) (*models.Review, error) {
		sent = in
		return &models.Review{ReviewID: 1, Rating: in.Rating}, nil
	}}
	svc := NewListingService(api, nil)

	_, err := svc.Review(context.Background(), stranger, 5, 6, "great")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Review(context.Background(), stranger, 5, 4, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)

	r, err := svc.Review(context.Background(), stranger, 5, 4, " great ")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, models.ReviewInput{UserID: stranger.UserID, Rating: 4, ReviewText: "great"}, sent)
}

func TestListings_Mine(t *testing.T) {
	var gotPage, gotRows int
	api := &fakeAPI{MyListingsFn: func(p, r int) (*models.Page[models.Listing], error) {
		gotPage, gotRows = p, r
		return &models.Page[models.Listing]{}, nil
	}}
	svc := NewListingService(api, nil)

	_, err := svc.Mine(context.Background(), nil, 1, 10)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Mine(context.Background(), owner, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, DefaultRowsPerPage, gotRows)
}

func TestListings_ByUser_HidesNonPublicFromOthers(t *testing.T) {
	page := func() *models.Page[models.Listing] {
		return &models.Page[models.Listing]{Items: []models.Listing{
			{PostID: 1, UserID: owner.UserID, Status: models.StatusActive},
			{PostID: 2, UserID: owner.UserID, Status: models.StatusDraft},
			{PostID: 3, UserID: owner.UserID, Status: models.StatusRejected},
		}}
	}
	var gotPage, gotRows int
	api := &fakeAPI{UserListingsFn: func(userID int64, p, rows int) (*models.Page[models.Listing], error) {
		require.Equal(t, owner.UserID, userID)
		gotPage, gotRows = p, rows
		return page(), nil
	}}
	svc := NewListingService(api, nil)
	ctx := context.Background()

	ids := func(p *models.Page[models.Listing]) []int64 {
		var out []int64
		for _, l := range p.Items {
			out = append(out, l.PostID)
		}
		return out
	}

	got, err := svc.ByUser(ctx, nil, owner.UserID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, DefaultRowsPerPage, gotRows)

	got, err = svc.ByUser(ctx, stranger, owner.UserID, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	got, err = svc.ByUser(ctx, owner, owner.UserID, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(got))

	got, err = svc.ByUser(ctx, admin, owner.UserID, 1, 12)
	require.NoError(t, err)
	assert.Len(t, got.Items, 3)

	_, err = svc.ByUser(ctx, nil, 0, 1, 12)
	require.ErrorIs(t, err, ErrInvalidInput)
}
