package listing

import "github.com/dmitrijs2005/tijarah/internal/client/models"

// IsPubliclyVisible reports whether s may appear in public feeds and detail
// views for users other than the owner and admins.
func IsPubliclyVisible(s models.ListingStatus) bool {
	return s == models.StatusActive
}

// Label is the human-readable name of s. Unknown values get
// models.UnknownStatusLabel.
func Label(s models.ListingStatus) string {
	return s.String()
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s models.ListingStatus) bool {
	return s == models.StatusRemoved || s == models.StatusDeleted
}

var transitions = map[models.ListingStatus][]models.ListingStatus{
	models.StatusDraft:         {models.StatusPendingReview},
	models.StatusPendingReview: {models.StatusActive, models.StatusRejected},
	models.StatusActive:        {models.StatusSold, models.StatusExpired},
	models.StatusSold:          nil,
	models.StatusExpired:       nil,
	models.StatusRejected:      {models.StatusDraft, models.StatusActive},
}

// CanTransition reports whether the lifecycle allows from → to. Every
// non-terminal state may additionally move to Removed or Deleted.
func CanTransition(from, to models.ListingStatus) bool {
	if !from.Known() || !to.Known() || IsTerminal(from) || from == to {
		return false
	}
	if to == models.StatusRemoved || to == models.StatusDeleted {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
