package models

import "github.com/dmitrijs2005/tijarah/internal/timex"

// Phone is one of a user's contact numbers.
type Phone struct {
	PhoneID     int64      `json:"phoneID"`
	UserID      int64      `json:"userID"`
	PhoneNumber string     `json:"phoneNumber"`
	IsPrimary   bool       `json:"isPrimary"`
	CreatedAt   timex.Time `json:"createdAt"`
	IsDeleted   bool       `json:"isDeleted"`
}

// PhoneList is the body of GET /users/{id}/phones.
type PhoneList struct {
	PhoneNumbers []Phone `json:"phoneNumbers"`
	PrimaryPhone string  `json:"primaryPhone"`
}

// Primary returns the primary number, falling back to PrimaryPhone.
func (l PhoneList) Primary() string {
	for _, p := range l.PhoneNumbers {
		if p.IsPrimary && !p.IsDeleted {
			return p.PhoneNumber
		}
	}
	return l.PrimaryPhone
}

// Find returns the phone with the given id.
func (l PhoneList) Find(id int64) (Phone, bool) {
	for _, p := range l.PhoneNumbers {
		if p.PhoneID == id {
			return p, true
		}
	}
	return Phone{}, false
}

// PhoneInput is the payload of POST /users/{id}/phones.
type PhoneInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7,max=20"`
	IsPrimary   bool   `json:"isPrimary"`
}

// PhoneUpdate is the payload of PUT /users/{id}/phones/{phoneId}.
type PhoneUpdate struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7,max=20"`
	IsPrimary   bool   `json:"isPrimary"`
	IsDeleted   bool   `json:"isDeleted"`
}
