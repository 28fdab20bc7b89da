package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateListingStatus_ServerErrorButApplied(t *testing.T) {
	var reads int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/admin/posts/7/status":
			var body models.StatusChange
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int(models.StatusActive), body.Status)
			assert.Equal(t, "Admin Policy Review", body.Reason)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"title": "Internal Server Error"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/posts/7/details":
			reads++
			writeJSON(w, http.StatusOK, map[string]any{"postID": 7, "status": int(models.StatusActive)})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	err := c.UpdateListingStatus(context.Background(), 7, models.StatusActive, "Admin Policy Review")
	require.NoError(t, err)
	assert.Equal(t, 1, reads)
}

func TestUpdateListingStatus_ServerErrorNotApplied(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			writeJSON(w, http.StatusBadGateway, map[string]any{"title": "Bad Gateway"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"postID": 7, "status": int(models.StatusPendingReview)})
	})

	err := c.UpdateListingStatus(context.Background(), 7, models.StatusActive, "")
	require.ErrorIs(t, err, ErrServer)
}

func TestUpdateListingStatus_ValidationErrorIsNotVerified(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("no read-back expected, got %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"title": "Bad Request"})
	})

	err := c.UpdateListingStatus(context.Background(), 7, models.StatusActive, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateSupportContact_ServerErrorButApplied(t *testing.T) {
	want := models.SupportContact{SupportEmail: "help@tijarah.example", SupportWhatsApp: "962790000000"}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			writeJSON(w, http.StatusInternalServerError, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, want)
	})

	require.NoError(t, c.UpdateSupportContact(context.Background(), want))
}

func TestUpdateSupportContact_ServerErrorAndDifferentValue(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			writeJSON(w, http.StatusInternalServerError, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, models.DefaultSupportContact)
	})

	err := c.UpdateSupportContact(context.Background(), models.SupportContact{SupportEmail: "new@x.example", SupportWhatsApp: "1"})
	require.ErrorIs(t, err, ErrServer)
}
