package models

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

type Media struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	WeddingID  uint      `json:"wedding_id" gorm:"not null;index"`
	URL        string    `json:"url" gorm:"not null"`
	StorageKey string    `json:"-" gorm:"not null"`
	Type       MediaType `json:"type" gorm:"not null;default:'IMAGE'"`
	Caption    string    `json:"caption"`
	UploadedBy uint      `json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
