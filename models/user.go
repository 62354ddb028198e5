// File: /models/user.go
package models

import (
	"time"
)

type UserType string

const (
	UserTypeIndividual   UserType = "individual"
	UserTypeOrganization UserType = "organization"
)

type User struct {
	ID              string   `json:"id" gorm:"primaryKey;size:191"`
	Username        string   `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email           string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password        string   `json:"-" gorm:"not null;size:255"`
	UserType        UserType `json:"user_type" gorm:"not null;default:'individual';size:20"`
	IsEmailVerified bool     `json:"is_email_verified" gorm:"default:false"`
	IsStaff         bool     `json:"is_staff" gorm:"default:false"`

	// Organization-only fields, empty for individual users
	OrganizationName     *string `json:"organization_name" gorm:"size:255"`
	VerificationDocument *string `json:"verification_document" gorm:"size:500"`
	IsOrgVerified        bool    `json:"is_org_verified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Interests []Interest `json:"interests" gorm:"many2many:user_interests"`
	Events    []Event    `json:"events" gorm:"foreignKey:CreatorID"`
}

type Interest struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:50"`
}

// UserSummary is the compact user representation embedded in friend lists,
// search results and request payloads.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

func (u *User) IsOrganization() bool {
	return u.UserType == UserTypeOrganization
}
