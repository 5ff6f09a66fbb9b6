package models

import (
	"time"
)

type UserPlan string

const (
	PlanFree    UserPlan = "FREE"
	PlanPremium UserPlan = "PREMIUM"
)

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name"`
	Email    string   `json:"email" gorm:"unique;not null"`
	Password string   `json:"-" gorm:"not null"`
	Plan     UserPlan `json:"plan" gorm:"not null;default:'FREE'"`

	// Stripe billing fields. CustomerID is written once by the checkout flow
	// and never regenerated; the subscription fields are owned by the webhook.
	StripeCustomerID       string     `json:"-" gorm:"index"`
	StripeSubscriptionID   string     `json:"-" gorm:"index"`
	StripePriceID          string     `json:"-"`
	StripeCurrentPeriodEnd *time.Time `json:"-"`

	Weddings []Wedding `json:"-" gorm:"many2many:wedding_owners"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
