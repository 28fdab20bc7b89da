package models

import "github.com/dmitrijs2005/tijarah/internal/timex"

// Listing is a marketplace post as returned in feeds.
type Listing struct {
	PostID          int64         `json:"postID"`
	UserID          int64         `json:"userID"`
	CategoryID      int64         `json:"categoryID"`
	PostTitle       string        `json:"postTitle"`
	PostDescription string        `json:"postDescription"`
	Price           float64       `json:"price"`
	Status          ListingStatus `json:"status"`
	CreatedAt       timex.Time    `json:"createdAt"`
	IsDeleted       bool          `json:"isDeleted"`
}

// ListingDetails is the full view of one listing.
type ListingDetails struct {
	Listing
	OwnerUserID     int64          `json:"ownerUserID"`
	OwnerUsername   string         `json:"ownerUsername"`
	OwnerEmail      string         `json:"ownerEmail"`
	OwnerFirstName  string         `json:"ownerFirstName"`
	OwnerLastName   string         `json:"ownerLastName"`
	OwnerFullName   string         `json:"ownerFullName"`
	CategoryName    string         `json:"categoryName"`
	Reviews         []Review       `json:"reviews"`
	Images          []ListingImage `json:"images"`
	ReviewCount     int            `json:"reviewCount"`
	AverageRating   float64        `json:"averageRating"`
	ImageCount      int            `json:"imageCount"`
	PrimaryImageURL string         `json:"primaryImageUrl"`
}

// ListingImage is one picture attached to a listing.
type ListingImage struct {
	PostImageID  int64      `json:"postImageID"`
	PostID       int64      `json:"postID"`
	PostImageURL string     `json:"postImageURL"`
	UploadedAt   timex.Time `json:"uploadedAt"`
}

// ListingInput is the create/update payload. Status is only sent on update.
type ListingInput struct {
	CategoryID      int64          `json:"categoryID" validate:"required,gt=0"`
	PostTitle       string         `json:"postTitle" validate:"required,min=3,max=200"`
	PostDescription string         `json:"postDescription" validate:"required,max=4000"`
	Price           float64        `json:"price" validate:"gte=0"`
	Status          *ListingStatus `json:"status,omitempty"`
}

// Review is a buyer's rating of a listing.
type Review struct {
	ReviewID         int64      `json:"reviewID"`
	PostID           int64      `json:"postID"`
	UserID           int64      `json:"userID"`
	Rating           int        `json:"rating"`
	ReviewText       string     `json:"reviewText"`
	CreatedAt        timex.Time `json:"createdAt"`
	IsDeleted        bool       `json:"isDeleted"`
	ReviewerUsername string     `json:"reviewerUsername,omitempty"`
	ReviewerFullName string     `json:"reviewerFullName,omitempty"`
}

// ReviewInput is the payload of POST /posts/{id}/reviews.
type ReviewInput struct {
	UserID     int64  `json:"userID" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required,max=1000"`
}

// ListingQuery filters the public feed. Zero values are not sent.
type ListingQuery struct {
	PageNumber  int
	RowsPerPage int
	CategoryID  int64
	Search      string
	UserID      int64
}

// Category groups listings.
type Category struct {
	CategoryID   int64      `json:"categoryID"`
	CategoryName string     `json:"categoryName"`
	CreatedAt    timex.Time `json:"createdAt"`
	IsDeleted    bool       `json:"isDeleted"`
}

// Page is the API's paginated envelope.
type Page[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	RowsPerPage     int  `json:"rowsPerPage"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}
