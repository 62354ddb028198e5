// File: /models/event.go
package models

import (
	"time"
)

type Event struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Title       string    `json:"title" gorm:"not null;size:255;index"`
	Description string    `json:"description" gorm:"not null;type:text"`
	Location    string    `json:"location" gorm:"not null;size:255"`
	Date        time.Time `json:"date" gorm:"not null"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	ImageURL    *string   `json:"image_url" gorm:"size:500"`
	IsPromoted  bool      `json:"is_promoted" gorm:"default:false"`
	CreatorID   string    `json:"creator_id" gorm:"not null;size:191;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator   User            `json:"creator" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Attendees []EventAttendee `json:"attendees" gorm:"foreignKey:EventID"`
}

// EventAttendee is one row per RSVP. The composite unique index keeps a user
// either present or absent, never duplicated.
type EventAttendee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:uk_event_attendees_event_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_event_attendees_event_user"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"event" gorm:"foreignKey:EventID"`
	User  User  `json:"user" gorm:"foreignKey:UserID"`
}
