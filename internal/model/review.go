package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review shown in the public gallery once approved.
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Author     string    `json:"author" db:"author"`
	Rating     int       `json:"rating" db:"rating"`
	Text       string    `json:"text" db:"text"`
	Image      *string   `json:"image,omitempty" db:"image"`
	IsApproved bool      `json:"isApproved" db:"is_approved"`
	IsFeatured bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
