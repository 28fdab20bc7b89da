// Package listing encodes the rules of the listing lifecycle on top of
// models.ListingStatus.
//
// A listing moves Draft → PendingReview → Active, and from there to Sold or
// Expired. Moderation may send a listing under review to Rejected, after which
// the owner can edit it back to Draft or an admin can approve it straight to
// Active. Any non-terminal listing can be Removed (policy action) or Deleted;
// those two states are terminal.
//
// The package answers three questions for callers:
//
//   - IsPubliclyVisible: may anonymous users see the listing in public feeds?
//     Only Active listings qualify.
//   - ModerationActions: which moderation buttons does an actor get?
//   - OwnerActions: which management buttons does the listing owner get?
//
// Values outside the enumeration are "unknown": never visible, no actions for
// anyone, and labelled models.UnknownStatusLabel.
package listing
