package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tijarah/internal/client/storage"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newRepo(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

func strptr(s string) *string { return &s }

// ---- fake API ----

// fakeAPI implements every client API interface. Unset funcs panic so a test
// notices an unexpected call.
type fakeAPI struct {
	LoginFn          func(models.Credentials) (*models.AuthResponse, error)
	RegisterFn       func(models.RegisterRequest) error
	UserImagesFn     func(int64) (*models.UserImages, error)
	UpdateProfileFn  func(int64, models.ProfileUpdate) error
	ChangePasswordFn func(int64, models.PasswordChange) error
	PhonesFn         func(int64) (*models.PhoneList, error)
	AddPhoneFn       func(int64, models.PhoneInput) (*models.Phone, error)
	UpdatePhoneFn    func(int64, int64, models.PhoneUpdate) error
	DeletePhoneFn    func(int64, int64) error

	ListingsFn       func(models.ListingQuery) (*models.Page[models.ListingDetails], error)
	MyListingsFn     func(int, int) (*models.Page[models.Listing], error)
	UserListingsFn   func(int64, int, int) (*models.Page[models.Listing], error)
	DetailsFn        func(int64) (*models.ListingDetails, error)
	CreateListingFn  func(models.ListingInput) (*models.Listing, error)
	UpdateListingFn  func(int64, models.ListingInput) error
	DeleteListingFn  func(int64) error
	AddReviewFn      func(int64, models.ReviewInput) (*models.Review, error)
	CategoriesFn     func() ([]models.Category, error)
	DashboardFn      func() (*models.DashboardStats, error)
	UsersFn          func(bool) ([]models.User, error)
	UserDetailsFn    func(int64) (*models.UserDetails, error)
	RestoreUserFn    func(int64) error
	PurgeUserFn      func(int64) error
	UserStatusFn     func(int64, models.StatusChange) error
	UserRoleFn       func(int64, models.Role) error
	AdminListingsFn  func(bool) ([]models.Listing, error)
	ListingStatusFn  func(int64, models.ListingStatus, string) error
	AdminDeleteFn    func(int64) error
	CreateCategoryFn func(string) (*models.Category, error)
	UpdateCategoryFn func(int64, string) error
	DeleteCategoryFn func(int64) error

	SupportFn       func() (*models.SupportContact, error)
	UpdateSupportFn func(models.SupportContact) error

	calls []string
}

func (f *fakeAPI) called(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) Login(_ context.Context, c models.Credentials) (*models.AuthResponse, error) {
	f.called("Login")
	return f.LoginFn(c)
}

func (f *fakeAPI) Register(_ context.Context, r models.RegisterRequest) error {
	f.called("Register")
	return f.RegisterFn(r)
}

func (f *fakeAPI) UserImages(_ context.Context, id int64) (*models.UserImages, error) {
	f.called("UserImages")
	return f.UserImagesFn(id)
}

func (f *fakeAPI) UpdateProfile(_ context.Context, id int64, in models.ProfileUpdate) error {
	f.called("UpdateProfile")
	return f.UpdateProfileFn(id, in)
}

func (f *fakeAPI) ChangePassword(_ context.Context, id int64, in models.PasswordChange) error {
	f.called("ChangePassword")
	return f.ChangePasswordFn(id, in)
}

func (f *fakeAPI) Phones(_ context.Context, userID int64) (*models.PhoneList, error) {
	f.called("Phones")
	return f.PhonesFn(userID)
}

func (f *fakeAPI) AddPhone(_ context.Context, userID int64, in models.PhoneInput) (*models.Phone, error) {
	f.called("AddPhone")
	return f.AddPhoneFn(userID, in)
}

func (f *fakeAPI) UpdatePhone(_ context.Context, userID, phoneID int64, in models.PhoneUpdate) error {
	f.called("UpdatePhone")
	return f.UpdatePhoneFn(userID, phoneID, in)
}

func (f *fakeAPI) DeletePhone(_ context.Context, userID, phoneID int64) error {
	f.called("DeletePhone")
	return f.DeletePhoneFn(userID, phoneID)
}

func (f *fakeAPI) Listings(_ context.Context, q models.ListingQuery) (*models.Page[models.ListingDetails], error) {
	f.called("Listings")
	return f.ListingsFn(q)
}

func (f *fakeAPI) MyListings(_ context.Context, page, rows int) (*models.Page[models.Listing], error) {
	f.called("MyListings")
	return f.MyListingsFn(page, rows)
}

func (f *fakeAPI) UserListings(_ context.Context, userID int64, page, rows int) (*models.Page[models.Listing], error) {
	f.called("UserListings")
	return f.UserListingsFn(userID, page, rows)
}

func (f *fakeAPI) ListingDetails(_ context.Context, id int64) (*models.ListingDetails, error) {
	f.called("ListingDetails")
	return f.DetailsFn(id)
}

func (f *fakeAPI) CreateListing(_ context.Context, in models.ListingInput) (*models.Listing, error) {
	f.called("CreateListing")
	return f.CreateListingFn(in)
}

func (f *fakeAPI) UpdateListing(_ context.Context, id int64, in models.ListingInput) error {
	f.called("UpdateListing")
	return f.UpdateListingFn(id, in)
}

func (f *fakeAPI) DeleteListing(_ context.Context, id int64) error {
	f.called("DeleteListing")
	return f.DeleteListingFn(id)
}

func (f *fakeAPI) AddReview(_ context.Context, id int64, in models.ReviewInput) (*models.Review, error) {
	f.called("AddReview")
	return f.AddReviewFn(id, in)
}

func (f *fakeAPI) Categories(context.Context) ([]models.Category, error) {
	f.called("Categories")
	return f.CategoriesFn()
}

func (f *fakeAPI) Dashboard(context.Context) (*models.DashboardStats, error) {
	f.called("Dashboard")
	return f.DashboardFn()
}

func (f *fakeAPI) Users(_ context.Context, includeDeleted bool) ([]models.User, error) {
	f.called("Users")
	return f.UsersFn(includeDeleted)
}

func (f *fakeAPI) UserDetails(_ context.Context, id int64) (*models.UserDetails, error) {
	f.called("UserDetails")
	return f.UserDetailsFn(id)
}

func (f *fakeAPI) RestoreUser(_ context.Context, id int64) error {
	f.called("RestoreUser")
	return f.RestoreUserFn(id)
}

func (f *fakeAPI) PurgeUser(_ context.Context, id int64) error {
	f.called("PurgeUser")
	return f.PurgeUserFn(id)
}

func (f *fakeAPI) UpdateUserStatus(_ context.Context, id int64, c models.StatusChange) error {
	f.called("UpdateUserStatus")
	return f.UserStatusFn(id, c)
}

func (f *fakeAPI) UpdateUserRole(_ context.Context, id int64, r models.Role) error {
	f.called("UpdateUserRole")
	return f.UserRoleFn(id, r)
}

func (f *fakeAPI) AdminListings(_ context.Context, includeDeleted bool) ([]models.Listing, error) {
	f.called("AdminListings")
	return f.AdminListingsFn(includeDeleted)
}

func (f *fakeAPI) UpdateListingStatus(_ context.Context, id int64, s models.ListingStatus, reason string) error {
	f.called("UpdateListingStatus")
	return f.ListingStatusFn(id, s, reason)
}

func (f *fakeAPI) AdminDeleteListing(_ context.Context, id int64) error {
	f.called("AdminDeleteListing")
	return f.AdminDeleteFn(id)
}

func (f *fakeAPI) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	f.called("CreateCategory")
	return f.CreateCategoryFn(name)
}

func (f *fakeAPI) UpdateCategory(_ context.Context, id int64, name string) error {
	f.called("UpdateCategory")
	return f.UpdateCategoryFn(id, name)
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id int64) error {
	f.called("DeleteCategory")
	return f.DeleteCategoryFn(id)
}

func (f *fakeAPI) SupportContact(context.Context) (*models.SupportContact, error) {
	f.called("SupportContact")
	return f.SupportFn()
}

func (f *fakeAPI) UpdateSupportContact(_ context.Context, in models.SupportContact) error {
	f.called("UpdateSupportContact")
	return f.UpdateSupportFn(in)
}

func (f *fakeAPI) Close() error { return nil }
