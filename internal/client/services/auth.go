// Package services contains the application services of the Tijarah client.
// This file is the credential store: it signs users in and out against the
// API and keeps the token and the user record in the durable slot.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

// Keys of the durable slot. Nothing else is stored there.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user
// when there is none.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService is the credential store.
//
// Contract:
//   - Login: authenticate and persist token and user together; on failure
//     nothing is written and the API error is returned as is.
//   - Logout: forget token and user. Never fails.
//   - CurrentUser: the persisted user, or nil when absent or unreadable.
//   - LoadUser: like CurrentUser, but a storage read failure is returned
//     instead of being reported as absence.
//   - IsAuthenticated: whether a token is persisted. The token's validity is
//     the API's business.
//   - Token: the persisted token, "" when absent.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) *models.User
	LoadUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
	Token(ctx context.Context) string
	Register(ctx context.Context, req models.RegisterRequest) error
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in models.PasswordChange) error
	ProfileImageURL(ctx context.Context, userID int64) (string, error)
	Phones(ctx context.Context) (*models.PhoneList, error)
	AddPhone(ctx context.Context, number string, primary bool) (*models.Phone, error)
	SetPrimaryPhone(ctx context.Context, phoneID int64) error
	DeletePhone(ctx context.Context, phoneID int64) error
}

type authService struct {
	api    client.AuthAPI
	repo   metadata.Repository
	logger logging.Logger
}

// NewAuthService binds the credential store to the API and the durable slot.
func NewAuthService(api client.AuthAPI, repo metadata.Repository, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{api: api, repo: repo, logger: logger.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if err := validateStruct(creds); err != nil {
		return nil, err
	}

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	if err := a.repo.SetMany(ctx, map[string][]byte{
		KeyToken: []byte(resp.Token),
		KeyUser:  userJSON,
	}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	a.logger.Info(ctx, "signed in", "user_id", resp.User.UserID, "role", resp.User.RoleID.String())
	return resp, nil
}

func (a *authService) Logout(ctx context.Context) {
	if err := a.repo.Delete(ctx, KeyToken, KeyUser); err != nil {
		a.logger.Error(ctx, "clear persisted session", "err", err)
	}
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	u, err := a.LoadUser(ctx)
	if err != nil {
		a.logger.Warn(ctx, "read persisted user", "err", err)
		return nil
	}
	return u
}

// LoadUser returns nil, nil when no usable user record is stored. A malformed
// record counts as absent.
func (a *authService) LoadUser(ctx context.Context) (*models.User, error) {
	raw, err := a.repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read persisted user: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		a.logger.Warn(ctx, "persisted user is malformed", "err", err)
		return nil, nil
	}
	return &u, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.Token(ctx) != ""
}

func (a *authService) Token(ctx context.Context) string {
	raw, err := a.repo.Get(ctx, KeyToken)
	if err != nil {
		a.logger.Warn(ctx, "read persisted token", "err", err)
		return ""
	}
	return string(raw)
}

// Register validates the sign-up form locally, including the password
// policy, before calling the API. It does not sign the user in.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if check := CheckPassword(req.Password); !check.Valid() {
		return check.Err
	}
	return a.api.Register(ctx, req)
}

// UpdateProfile saves the profile and refreshes the persisted user record so
// CurrentUser reflects the change.
func (a *authService) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	u := a.CurrentUser(ctx)
	if u == nil || !a.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := a.api.UpdateProfile(ctx, u.UserID, in); err != nil {
		return nil, err
	}

	u.Username = in.Username
	u.Email = in.Email
	u.FirstName = in.FirstName
	u.LastName = nil
	if in.LastName != "" {
		last := in.LastName
		u.LastName = &last
	}
	u.FullName = u.FirstName
	if u.LastName != nil {
		u.FullName += " " + *u.LastName
	}

	if err := a.persistUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// persistUser rewrites the cached user record. The token is left alone.
func (a *authService) persistUser(ctx context.Context, u *models.User) error {
	userJSON, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := a.repo.SetMany(ctx, map[string][]byte{KeyUser: userJSON}); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, in models.PasswordChange) error {
	u := a.CurrentUser(ctx)
	if u == nil {
		return ErrNotAuthenticated
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	if check := CheckPassword(in.NewPassword); !check.Valid() {
		return check.Err
	}
	return a.api.ChangePassword(ctx, u.UserID, in)
}

// ProfileImageURL returns the user's primary image URL, "" when none is set.
func (a *authService) ProfileImageURL(ctx context.Context, userID int64) (string, error) {
	imgs, err := a.api.UserImages(ctx, userID)
	if err != nil {
		return "", err
	}
	if imgs.PrimaryImageURL == nil {
		return "", nil
	}
	return *imgs.PrimaryImageURL, nil
}
