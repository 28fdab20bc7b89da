package client

import (
	"context"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// TokenSource supplies the bearer token for authenticated requests. An empty
// token means the request goes out anonymously.
type TokenSource interface {
	Token(ctx context.Context) string
}

// AuthAPI covers sign-in, sign-up and the signed-in user's own record.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	UserImages(ctx context.Context, userID int64) (*models.UserImages, error)
	UpdateProfile(ctx context.Context, userID int64, in models.ProfileUpdate) error
	ChangePassword(ctx context.Context, userID int64, in models.PasswordChange) error
	Phones(ctx context.Context, userID int64) (*models.PhoneList, error)
	AddPhone(ctx context.Context, userID int64, in models.PhoneInput) (*models.Phone, error)
	UpdatePhone(ctx context.Context, userID, phoneID int64, in models.PhoneUpdate) error
	DeletePhone(ctx context.Context, userID, phoneID int64) error
}

// ListingAPI covers listings, reviews and categories as seen by members.
type ListingAPI interface {
	Listings(ctx context.Context, q models.ListingQuery) (*models.Page[models.ListingDetails], error)
	MyListings(ctx context.Context, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error)
	UserListings(ctx context.Context, userID int64, pageNumber, rowsPerPage int) (*models.Page[models.Listing], error)
	ListingDetails(ctx context.Context, id int64) (*models.ListingDetails, error)
	CreateListing(ctx context.Context, in models.ListingInput) (*models.Listing, error)
	UpdateListing(ctx context.Context, id int64, in models.ListingInput) error
	DeleteListing(ctx context.Context, id int64) error
	AddReview(ctx context.Context, listingID int64, in models.ReviewInput) (*models.Review, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// AdminAPI covers the admin console endpoints.
type AdminAPI interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	Users(ctx context.Context, includeDeleted bool) ([]models.User, error)
	UserDetails(ctx context.Context, userID int64) (*models.UserDetails, error)
	RestoreUser(ctx context.Context, userID int64) error
	PurgeUser(ctx context.Context, userID int64) error
	UpdateUserStatus(ctx context.Context, userID int64, change models.StatusChange) error
	UpdateUserRole(ctx context.Context, userID int64, role models.Role) error
	AdminListings(ctx context.Context, includeDeleted bool) ([]models.Listing, error)
	UpdateListingStatus(ctx context.Context, id int64, status models.ListingStatus, reason string) error
	AdminDeleteListing(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
}

// SettingsAPI covers the support contact settings.
type SettingsAPI interface {
	SupportContact(ctx context.Context) (*models.SupportContact, error)
	UpdateSupportContact(ctx context.Context, in models.SupportContact) error
}

// Client is the whole Tijarah API.
type Client interface {
	AuthAPI
	ListingAPI
	AdminAPI
	SettingsAPI
	Close() error
}
