package models

// ListingStatus is the lifecycle state of a marketplace listing.
// Values outside Draft..Deleted are possible on the wire and must be treated
// as unknown, never as any particular state.
type ListingStatus int

const (
	StatusDraft         ListingStatus = 0
	StatusPendingReview ListingStatus = 1
	StatusActive        ListingStatus = 2
	StatusSold          ListingStatus = 3
	StatusExpired       ListingStatus = 4
	StatusRejected      ListingStatus = 5
	StatusRemoved       ListingStatus = 6
	StatusDeleted       ListingStatus = 7
)

// UnknownStatusLabel is shown for any value outside the enumeration.
const UnknownStatusLabel = "Unknown"

var statusLabels = [...]string{
	StatusDraft:         "Draft",
	StatusPendingReview: "Pending Review",
	StatusActive:        "Active",
	StatusSold:          "Sold",
	StatusExpired:       "Expired",
	StatusRejected:      "Rejected",
	StatusRemoved:       "Removed",
	StatusDeleted:       "Deleted",
}

// Known reports whether s is one of the eight enumerated states.
func (s ListingStatus) Known() bool {
	return s >= StatusDraft && s <= StatusDeleted
}

// String is total: every value, known or not, has a label.
func (s ListingStatus) String() string {
	if !s.Known() {
		return UnknownStatusLabel
	}
	return statusLabels[s]
}

// AllStatuses lists the enumeration in numeric order.
func AllStatuses() []ListingStatus {
	return []ListingStatus{
		StatusDraft, StatusPendingReview, StatusActive, StatusSold,
		StatusExpired, StatusRejected, StatusRemoved, StatusDeleted,
	}
}
