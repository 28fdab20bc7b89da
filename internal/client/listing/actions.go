package listing

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/models"
)

// Action is something a user can do to a listing.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
	ActionEdit    Action = "edit"
	ActionSubmit  Action = "submit"
)

// Actions is an ordered set of actions.
type Actions []Action

// Has reports whether a is in the set.
func (as Actions) Has(a Action) bool {
	return slices.Contains(as, a)
}

func (as Actions) String() string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// ModerationActions lists the moderation actions available to an actor of
// the given role on a listing in status s. Only admins get any: approve unless
// the listing is already Active, reject unless it is already Rejected, and
// delete always. Unknown statuses grant nothing.
func ModerationActions(s models.ListingStatus, actor *models.User) Actions {
	if !models.IsAdmin(actor) || !s.Known() {
		return Actions{}
	}

	out := make(Actions, 0, 3)
	if s != models.StatusActive {
		out = append(out, ActionApprove)
	}
	if s != models.StatusRejected {
		out = append(out, ActionReject)
	}
	return append(out, ActionDelete)
}

// OwnerActions lists what the owner may do: edit and delete, in any known
// status. Non-owners get nothing.
func OwnerActions(s models.ListingStatus, isOwner bool) Actions {
	if !isOwner || !s.Known() {
		return Actions{}
	}
	return Actions{ActionEdit, ActionDelete}
}

// CanSubmit reports whether the owner may send the listing for review.
func CanSubmit(s models.ListingStatus, isOwner bool) bool {
	return isOwner && CanTransition(s, models.StatusPendingReview)
}

// TargetStatus is the status an action moves a listing to.
func TargetStatus(a Action) (models.ListingStatus, bool) {
	switch a {
	case ActionApprove:
		return models.StatusActive, true
	case ActionReject:
		return models.StatusRejected, true
	case ActionDelete:
		return models.StatusDeleted, true
	case ActionSubmit:
		return models.StatusPendingReview, true
	default:
		return 0, false
	}
}

// ParseAction accepts the action names used on the command line.
func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionApprove, ActionReject, ActionDelete, ActionEdit, ActionSubmit:
		return a, true
	default:
		return "", false
	}
}
