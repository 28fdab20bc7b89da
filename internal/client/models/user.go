package models

import (
	"strconv"

	"github.com/dmitrijs2005/tijarah/internal/timex"
)

// Role is the account role as the API encodes it in roleID.
type Role int

const (
	RoleAdmin     Role = 1
	RoleUser      Role = 2
	RoleModerator Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	case RoleModerator:
		return "Moderator"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

// UserStatus is the account standing kept by the API.
type UserStatus int

const (
	UserActive    UserStatus = 0
	UserInactive  UserStatus = 1
	UserBanned    UserStatus = 2
	UserSuspended UserStatus = 3
)

func (s UserStatus) String() string {
	switch s {
	case UserActive:
		return "Active"
	case UserInactive:
		return "Inactive"
	case UserBanned:
		return "Banned"
	case UserSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// User is the account record returned by login and kept in the local store.
type User struct {
	UserID       int64      `json:"userID"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     *string    `json:"lastName"`
	JoinDate     timex.Time `json:"joinDate"`
	Status       UserStatus `json:"status"`
	RoleID       Role       `json:"roleID"`
	IsDeleted    bool       `json:"isDeleted"`
	FullName     string     `json:"fullName,omitempty"`
	PrimaryPhone string     `json:"primaryPhone,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.FirstName != "" {
		if u.LastName != nil && *u.LastName != "" {
			return u.FirstName + " " + *u.LastName
		}
		return u.FirstName
	}
	return u.Username
}

// IsAdmin is the single place where elevated capability is decided.
// Moderator is recognised as a role but carries no extra capability.
func IsAdmin(u *User) bool {
	return u != nil && u.RoleID == RoleAdmin
}

// Credentials is the login payload. Login accepts a username or an email.
type Credentials struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	User      User       `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt timex.Time `json:"expiresAt"`
	Role      string     `json:"role"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName,omitempty" validate:"max=50"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
}

// ProfileUpdate is the editable part of a user record.
type ProfileUpdate struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName,omitempty" validate:"max=50"`
}

// PasswordChange is the payload of a password change.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// UserImage is one uploaded profile picture.
type UserImage struct {
	UserImageID int64      `json:"userImageID"`
	UserID      int64      `json:"userID"`
	ImageURL    string     `json:"imageURL"`
	UploadedAt  timex.Time `json:"uploadedAt"`
	IsDeleted   bool       `json:"isDeleted"`
}

// UserImages is the body of GET /users/{id}/images.
type UserImages struct {
	PrimaryImageURL *string     `json:"primaryImageUrl"`
	Images          []UserImage `json:"images"`
}
