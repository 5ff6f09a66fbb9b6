package models

import "time"

type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "PENDING"
	RSVPConfirmed RSVPStatus = "CONFIRMED"
	RSVPDeclined  RSVPStatus = "DECLINED"
	RSVPMaybe     RSVPStatus = "MAYBE"
)

type Guest struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	WeddingID           uint       `json:"wedding_id" gorm:"not null;index"`
	FirstName           string     `json:"first_name" gorm:"not null"`
	LastName            string     `json:"last_name" gorm:"not null"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Group               string     `json:"group" gorm:"not null;default:'OTHER'"`
	RSVPStatus          RSVPStatus `json:"rsvp_status" gorm:"not null;default:'PENDING'"`
	RSVPDate            *time.Time `json:"rsvp_date"`
	RSVPToken           string     `json:"-" gorm:"uniqueIndex;not null"`
	PlusOne             bool       `json:"plus_one"`
	PlusOneConfirmed    bool       `json:"plus_one_confirmed"`
	PlusOneName         string     `json:"plus_one_name"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateGuestRequest struct {
	FirstName           string `json:"first_name" validate:"required"`
	LastName            string `json:"last_name" validate:"required"`
	Email               string `json:"email" validate:"omitempty,email"`
	Phone               string `json:"phone"`
	Group               string `json:"group"`
	PlusOne             bool   `json:"plus_one"`
	PlusOneName         string `json:"plus_one_name"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	Notes               string `json:"notes"`
}

type RSVPRequest struct {
	RSVPStatus          RSVPStatus `json:"rsvp_status" validate:"required,rsvp_status"`
	PlusOneConfirmed    bool       `json:"plus_one_confirmed"`
	PlusOneName         string     `json:"plus_one_name"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`
}
