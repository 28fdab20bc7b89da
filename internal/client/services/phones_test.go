package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedInAuth returns an AuthService whose store holds sampleUser.
func signedInAuth(t *testing.T, api *fakeAPI) AuthService {
	t.Helper()
	api.LoginFn = okLogin(sampleUser())
	svc := NewAuthService(api, newRepo(t), nil)
	_, err := svc.Login(context.Background(), models.Credentials{Login: "alice", Password: "Secret#123"})
	require.NoError(t, err)
	api.calls = nil
	return svc
}

func phoneList(primaryID int64) *models.PhoneList {
	l := &models.PhoneList{PhoneNumbers: []models.Phone{
		{PhoneID: 1, UserID: 7, PhoneNumber: "0791111111"},
		{PhoneID: 2, UserID: 7, PhoneNumber: "0792222222"},
	}}
	for i := range l.PhoneNumbers {
		if l.PhoneNumbers[i].PhoneID == primaryID {
			l.PhoneNumbers[i].IsPrimary = true
		}
	}
	return l
}

func TestPhones_RequireSignIn(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	svc := NewAuthService(api, newRepo(t), nil)

	_, err := svc.Phones(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.AddPhone(ctx, "0791111111", false)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.ErrorIs(t, svc.SetPrimaryPhone(ctx, 1), ErrNotAuthenticated)
	require.ErrorIs(t, svc.DeletePhone(ctx, 1), ErrNotAuthenticated)
	assert.Empty(t, api.calls)
}

func TestPhones_AddNormalisesAndSyncsPrimary(t *testing.T) {
	ctx := context.Background()
	var sent models.PhoneInput
	api := &fakeAPI{
		AddPhoneFn: func(userID int64, in models.PhoneInput) (*models.Phone, error) {
			require.Equal(t, int64(7), userID)
			sent = in
			return &models.Phone{PhoneID: 2, UserID: 7, PhoneNumber: in.PhoneNumber, IsPrimary: true}, nil
		},
		PhonesFn: func(int64) (*models.PhoneList, error) { return phoneList(2), nil },
	}
	svc := signedInAuth(t, api)

	p, err := svc.AddPhone(ctx, " 079 222 2222 ", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.PhoneID)
	assert.Equal(t, models.PhoneInput{PhoneNumber: "0792222222", IsPrimary: true}, sent)
	assert.Equal(t, "0792222222", svc.CurrentUser(ctx).PrimaryPhone)
}

func TestPhones_AddValidates(t *testing.T) {
	api := &fakeAPI{}
	svc := signedInAuth(t, api)

	_, err := svc.AddPhone(context.Background(), "12", false)
	require.Error(t, err)
	assert.Empty(t, api.calls)
}

func TestPhones_SetPrimary(t *testing.T) {
	ctx := context.Background()
	current := phoneList(1)
	var updated []models.PhoneUpdate
	api := &fakeAPI{
		PhonesFn: func(int64) (*models.PhoneList, error) { return current, nil },
		UpdatePhoneFn: func(_, phoneID int64, in models.PhoneUpdate) error {
			require.Equal(t, int64(2), phoneID)
			updated = append(updated, in)
			current = phoneList(2)
			return nil
		},
	}
	svc := signedInAuth(t, api)

	require.NoError(t, svc.SetPrimaryPhone(ctx, 2))
	assert.Equal(t, []models.PhoneUpdate{{PhoneNumber: "0792222222", IsPrimary: true}}, updated)
	assert.Equal(t, "0792222222", svc.CurrentUser(ctx).PrimaryPhone)

	require.NoError(t, svc.SetPrimaryPhone(ctx, 2), "already primary")
	assert.Len(t, updated, 1)

	require.ErrorIs(t, svc.SetPrimaryPhone(ctx, 99), client.ErrNotFound)
}

func TestPhones_DeleteKeepsGoingWhenRefreshFails(t *testing.T) {
	var deleted int64
	api := &fakeAPI{
		DeletePhoneFn: func(_, phoneID int64) error { deleted = phoneID; return nil },
		PhonesFn:      func(int64) (*models.PhoneList, error) { return nil, client.ErrUnavailable },
	}
	svc := signedInAuth(t, api)

	require.NoError(t, svc.DeletePhone(context.Background(), 1))
	assert.Equal(t, int64(1), deleted)
}

func TestPhoneList_Primary(t *testing.T) {
	assert.Equal(t, "0791111111", phoneList(1).Primary())
	assert.Equal(t, "", phoneList(0).Primary())
	assert.Equal(t, "0790000000", models.PhoneList{PrimaryPhone: "0790000000"}.Primary())
}
