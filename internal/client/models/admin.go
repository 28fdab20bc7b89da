package models

import "github.com/dmitrijs2005/tijarah/internal/timex"

// DashboardStats is the body of GET /admin/dashboard.
type DashboardStats struct {
	GeneratedAt        timex.Time `json:"generatedAt"`
	TotalUsers         int        `json:"totalUsers"`
	ActiveUsers        int        `json:"activeUsers"`
	DeletedUsers       int        `json:"deletedUsers"`
	TotalPosts         int        `json:"totalPosts"`
	ActivePosts        int        `json:"activePosts"`
	DeletedPosts       int        `json:"deletedPosts"`
	DraftPosts         int        `json:"draftPosts"`
	PendingReviewPosts int        `json:"pendingReviewPosts"`
	PublishedPosts     int        `json:"publishedPosts"`
	TotalCategories    int        `json:"totalCategories"`
	TotalRoles         int        `json:"totalRoles"`
}

// UserDetails is the body of GET /admin/users/{id}.
type UserDetails struct {
	User
	TotalPosts  int `json:"totalPosts"`
	TotalImages int `json:"totalImages"`
}

// StatusChange is the payload of the admin status endpoints for both users
// and listings.
type StatusChange struct {
	Status int    `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// SupportContact is how a banned or stuck user reaches the operators.
type SupportContact struct {
	SupportEmail    string `json:"supportEmail" validate:"required,email"`
	SupportWhatsApp string `json:"supportWhatsApp" validate:"required,numeric,min=8,max=15"`
}

// DefaultSupportContact is used when the API has nothing configured or
// cannot be reached.
var DefaultSupportContact = SupportContact{
	SupportEmail:    "support@tijarahjo.com",
	SupportWhatsApp: "962791234567",
}

// WhatsAppLink is the wa.me deep link for the support number.
func (s SupportContact) WhatsAppLink() string {
	return "https://wa.me/" + s.SupportWhatsApp
}
