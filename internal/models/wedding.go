package models

import "time"

type Wedding struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Date         time.Time `json:"date" gorm:"not null"`
	Venue        string    `json:"venue"`
	VenueAddress string    `json:"venue_address"`
	Description  string    `json:"description"`
	Partner1Name string    `json:"partner1_name" gorm:"not null"`
	Partner2Name string    `json:"partner2_name" gorm:"not null"`
	GuestLimit   int       `json:"guest_limit" gorm:"not null"`
	BudgetTotal  int       `json:"budget_total" gorm:"not null;default:0"`

	Owners []User `json:"-" gorm:"many2many:wedding_owners"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateWeddingRequest struct {
	Partner1Name string `json:"partner1_name" validate:"required"`
	Partner2Name string `json:"partner2_name" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Venue        string `json:"venue"`
	BudgetTotal  int    `json:"budget_total"`
}

type UpdateWeddingRequest struct {
	Name         string `json:"name"`
	Date         string `json:"date"`
	Venue        string `json:"venue"`
	VenueAddress string `json:"venue_address"`
	Description  string `json:"description"`
	BudgetTotal  *int   `json:"budget_total"`
}
