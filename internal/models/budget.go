package models

import "time"

type BudgetItem struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	WeddingID     uint       `json:"wedding_id" gorm:"not null;index"`
	Name          string     `json:"name" gorm:"not null"`
	Category      string     `json:"category" gorm:"not null;default:'OTHER'"`
	EstimatedCost int        `json:"estimated_cost" gorm:"not null"`
	ActualCost    int        `json:"actual_cost"`
	Paid          bool       `json:"paid" gorm:"not null;default:false"`
	PaidDate      *time.Time `json:"paid_date"`
	Notes         string     `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateBudgetItemRequest struct {
	Name          string `json:"name" validate:"required"`
	Category      string `json:"category"`
	EstimatedCost int    `json:"estimated_cost" validate:"gte=0"`
	Notes         string `json:"notes"`
}

type UpdateBudgetItemRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	EstimatedCost *int   `json:"estimated_cost"`
	ActualCost    *int   `json:"actual_cost"`
	Paid          *bool  `json:"paid"`
	Notes         string `json:"notes"`
}
