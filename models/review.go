// File: /models/review.go
package models

import (
	"time"
)

type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	EventID    string    `json:"event_id" gorm:"not null;size:191;index"`
	ReviewerID string    `json:"reviewer_id" gorm:"not null;size:191;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"not null;type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Event    Event `json:"-" gorm:"foreignKey:EventID"`
	Reviewer User  `json:"reviewer" gorm:"foreignKey:ReviewerID"`
}
