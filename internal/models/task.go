package models

import "time"

type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	WeddingID   uint       `json:"wedding_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	Priority    string     `json:"priority" gorm:"not null;default:'MEDIUM'"`
	Category    string     `json:"category" gorm:"not null;default:'OTHER'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Completed   *bool  `json:"completed"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}
