package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// Phones lists the signed-in user's contact numbers.
func (a *authService) Phones(ctx context.Context) (*models.PhoneList, error) {
	u := a.CurrentUser(ctx)
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return a.api.Phones(ctx, u.UserID)
}

func (a *authService) AddPhone(ctx context.Context, number string, primary bool) (*models.Phone, error) {
	u := a.CurrentUser(ctx)
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	in := models.PhoneInput{PhoneNumber: normalizePhone(number), IsPrimary: primary}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p, err := a.api.AddPhone(ctx, u.UserID, in)
	if err != nil {
		return nil, err
	}
	a.syncPrimaryPhone(ctx, u)
	return p, nil
}

// SetPrimaryPhone marks one of the user's numbers as primary. It is a no-op
// when the number already is.
func (a *authService) SetPrimaryPhone(ctx context.Context, phoneID int64) error {
	u := a.CurrentUser(ctx)
	if u == nil {
		return ErrNotAuthenticated
	}
	list, err := a.api.Phones(ctx, u.UserID)
	if err != nil {
		return err
	}
	p, ok := list.Find(phoneID)
	if !ok || p.IsDeleted {
		return fmt.Errorf("phone %d: %w", phoneID, client.ErrNotFound)
	}
	if p.IsPrimary {
		return nil
	}
	if err := a.api.UpdatePhone(ctx, u.UserID, phoneID, models.PhoneUpdate{
		PhoneNumber: p.PhoneNumber,
		IsPrimary:   true,
	}); err != nil {
		return err
	}
	a.syncPrimaryPhone(ctx, u)
	return nil
}

func (a *authService) DeletePhone(ctx context.Context, phoneID int64) error {
	u := a.CurrentUser(ctx)
	if u == nil {
		return ErrNotAuthenticated
	}
	if err := a.api.DeletePhone(ctx, u.UserID, phoneID); err != nil {
		return err
	}
	a.syncPrimaryPhone(ctx, u)
	return nil
}

// syncPrimaryPhone refreshes the primary number kept on the cached user.
// Failures are logged; the phone change itself already succeeded.
func (a *authService) syncPrimaryPhone(ctx context.Context, u *models.User) {
	list, err := a.api.Phones(ctx, u.UserID)
	if err != nil {
		a.logger.Warn(ctx, "refresh phone numbers", "err", err)
		return
	}
	primary := list.Primary()
	if primary == u.PrimaryPhone {
		return
	}
	u.PrimaryPhone = primary
	if err := a.persistUser(ctx, u); err != nil {
		a.logger.Warn(ctx, "update cached primary phone", "err", err)
	}
}

func normalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}
