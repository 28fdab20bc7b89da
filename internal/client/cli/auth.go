package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
	"github.com/dmitrijs2005/tijarah/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const bannedFallback = "Your account has been banned."

// Register prompts for the sign-up form and creates the account. The password
// strength is shown before the request is sent. On success the user is sent
// to login.
func (a *App) Register(ctx context.Context, _ []string) error {
	a.navigate(access.RouteRegister)

	var req models.RegisterRequest
	var err error
	if req.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if req.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if req.FirstName, err = a.ask("First name"); err != nil {
		return err
	}
	if req.LastName, err = a.ask("Last name (optional)"); err != nil {
		return err
	}
	if req.PhoneNumber, err = a.ask("Phone number, e.g. +962791234567 (optional)"); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return fmt.Errorf("%w: passwords do not match", services.ErrInvalidInput)
	}

	check := services.CheckPassword(string(password))
	a.printf("Password strength: %s\n", check.Strength)
	req.Password = string(password)

	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}

	a.printf("Account created. You can log in now.\n")
	a.navigate(access.RouteLogin)
	return nil
}

// Login prompts for credentials and signs in through the session.
//
// A banned account gets the server's message verbatim and, after
// BannedRedirectDelay, the account-banned view. Every other failure is
// returned for the REPL to report; the user can simply try again.
func (a *App) Login(ctx context.Context, _ []string) error {
	a.navigate(access.RouteLogin)

	login, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.session.Login(ctx, models.Credentials{Login: login, Password: string(password)})
	if err != nil {
		if errors.Is(err, client.ErrAccountBanned) {
			a.banned(ctx, err)
			return nil
		}
		a.logger.Info(ctx, "login unsuccessful", "err", err)
		return err
	}

	a.printf("Welcome back, %s!\n", resp.User.DisplayName())
	if models.IsAdmin(&resp.User) {
		a.printf("Admin tools are available, see 'help'.\n")
	}
	a.navigate(access.RouteHome)
	return nil
}

// banned shows the ban message, waits so it can be read, then shows the
// account-banned view.
func (a *App) banned(ctx context.Context, err error) {
	msg, ok := client.Detail(err)
	if !ok {
		msg = bannedFallback
	}
	a.printf("%s\n", msg)

	select {
	case <-afterFn(a.config.BannedRedirectDelay):
	case <-ctx.Done():
		return
	}
	_ = a.Support(ctx, nil)
}

// Support is the account-banned view: how to reach the operators.
func (a *App) Support(ctx context.Context, _ []string) error {
	a.navigate(access.RouteAccountBanned)

	c := a.settings.SupportContact(ctx)
	a.printf("Account restricted\n")
	a.printf("If you believe this is a mistake, contact support:\n")
	a.printf("  Email:    %s\n", c.SupportEmail)
	a.printf("  WhatsApp: %s\n", c.WhatsAppLink())
	return nil
}

// Logout signs out. It never fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	a.printf("Signed out.\n")
	a.navigate(access.RouteHome)
	return nil
}

// Home prints the landing view.
func (a *App) Home(_ context.Context, _ []string) error {
	a.navigate(access.RouteHome)

	v := a.session.Snapshot()
	if v.User == nil {
		a.printf("Tijarah marketplace. 'browse' to see listings, 'login' or 'register' to sell.\n")
		return nil
	}
	a.printf("Hello, %s. 'mine' lists your listings, 'new' creates one.\n", v.User.DisplayName())
	return nil
}

// Profile prints the signed-in user.
func (a *App) Profile(_ context.Context, _ []string) error {
	a.navigate(access.RouteProfile)

	v := a.session.Snapshot()
	if v.User == nil {
		return services.ErrNotAuthenticated
	}
	u := v.User
	a.printf("Username: %s\n", u.Username)
	a.printf("Name:     %s\n", u.DisplayName())
	a.printf("Email:    %s\n", u.Email)
	a.printf("Role:     %s\n", u.RoleID)
	a.printf("Status:   %s\n", u.Status)
	a.printf("Joined:   %s\n", u.JoinDate.Format("2006-01-02"))
	if u.PrimaryPhone != "" {
		a.printf("Phone:    %s\n", u.PrimaryPhone)
	}
	if v.ProfileImage != "" {
		a.printf("Image:    %s\n", v.ProfileImage)
	}
	return nil
}

// EditProfile prompts for the editable profile fields, defaulting to the
// current values.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	a.navigate(access.RouteProfile)

	u := a.session.User()
	if u == nil {
		return services.ErrNotAuthenticated
	}
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}

	var in models.ProfileUpdate
	var err error
	if in.Username, err = a.askDefault("Username", u.Username); err != nil {
		return err
	}
	if in.Email, err = a.askDefault("Email", u.Email); err != nil {
		return err
	}
	if in.FirstName, err = a.askDefault("First name", u.FirstName); err != nil {
		return err
	}
	if in.LastName, err = a.askDefault("Last name", last); err != nil {
		return err
	}

	if _, err := a.auth.UpdateProfile(ctx, in); err != nil {
		return err
	}
	a.session.Reload(ctx)
	a.printf("Profile updated.\n")
	return nil
}

// ChangePassword prompts for the current and the new password.
func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	a.navigate(access.RouteProfile)

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)
	confirm, err := getPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(next),
		ConfirmPassword: string(confirm),
	}); err != nil {
		return err
	}
	a.printf("Password changed.\n")
	return nil
}
