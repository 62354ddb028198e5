// File: /models/friend_request.go
package models

import "time"

// FriendRequest is a transient intent, not a persistent relation: accepting
// one creates a Friendship row and deletes the request. At most one row may
// exist per ordered (from, to) pair.
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FromUserID string    `json:"from_user_id" gorm:"not null;size:191;uniqueIndex:uk_friend_requests_pair"`
	ToUserID   string    `json:"to_user_id" gorm:"not null;size:191;uniqueIndex:uk_friend_requests_pair"`
	CreatedAt  time.Time `json:"created_at"`

	FromUser User `json:"from_user" gorm:"foreignKey:FromUserID"`
	ToUser   User `json:"to_user" gorm:"foreignKey:ToUserID"`
}

// Friendship stores the symmetric friends edge exactly once, with the pair in
// canonical order (User1ID < User2ID).
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `json:"user1" gorm:"foreignKey:User1ID"`
	User2 User `json:"user2" gorm:"foreignKey:User2ID"`
}

// CanonicalPair orders two user IDs so a friendship edge is stored once
// regardless of which side initiated it.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// RelationshipStatus is the projection of the friendship state machine for an
// ordered (viewer, subject) pair, computed on read.
type RelationshipStatus string

const (
	RelationshipNone     RelationshipStatus = "none"
	RelationshipSent     RelationshipStatus = "sent"
	RelationshipReceived RelationshipStatus = "received"
	RelationshipFriends  RelationshipStatus = "friends"
	RelationshipSelf     RelationshipStatus = "self"
)
