// File: /controllers/friend_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"perfectspot-api/models"
	"perfectspot-api/utils"
)

type FriendController struct {
	db *gorm.DB
}

func NewFriendController(db *gorm.DB) *FriendController {
	return &FriendController{db: db}
}

// areFriends checks the symmetric friends edge via its canonical pair row.
func areFriends(db *gorm.DB, userID, otherID string) bool {
	user1ID, user2ID := models.CanonicalPair(userID, otherID)

	var friendship models.Friendship
	err := db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friendship).Error
	return err == nil
}

// relationshipStatus projects the friendship state machine for an ordered
// (viewer, subject) pair. Friendship is checked first so a stale request row
// can never mask an established friendship. Returns the id of the pending
// request when one exists.
func relationshipStatus(db *gorm.DB, viewerID, subjectID string) (models.RelationshipStatus, uint) {
	if viewerID == subjectID {
		return models.RelationshipSelf, 0
	}

	if areFriends(db, viewerID, subjectID) {
		return models.RelationshipFriends, 0
	}

	var sent models.FriendRequest
	if err := db.Where("from_user_id = ? AND to_user_id = ?", viewerID, subjectID).First(&sent).Error; err == nil {
		return models.RelationshipSent, sent.ID
	}

	var received models.FriendRequest
	if err := db.Where("from_user_id = ? AND to_user_id = ?", subjectID, viewerID).First(&received).Error; err == nil {
		return models.RelationshipReceived, received.ID
	}

	return models.RelationshipNone, 0
}

type SendFriendRequestRequest struct {
	ToUser string `json:"to_user" binding:"required"`
}

func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")

	var req SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Failed to send friend request.", err.Error())
		return
	}

	if senderID == req.ToUser {
		utils.SendError(c, http.StatusConflict, "Cannot send a friend request to yourself.")
		return
	}

	var receiver models.User
	if err := fc.db.First(&receiver, "id = ?", req.ToUser).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	if areFriends(fc.db, senderID, req.ToUser) {
		utils.SendError(c, http.StatusConflict, "Already friends with this user.")
		return
	}

	var existingRequest models.FriendRequest
	err := fc.db.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		senderID, req.ToUser, req.ToUser, senderID).First(&existingRequest).Error
	if err == nil {
		utils.SendError(c, http.StatusConflict, "A friend request already exists between you and this user.")
		return
	}

	friendRequest := models.FriendRequest{
		FromUserID: senderID,
		ToUserID:   req.ToUser,
	}

	if err := fc.db.Create(&friendRequest).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to send friend request.")
		return
	}

	utils.SendCreated(c, "Friend request sent successfully.", gin.H{
		"id":      friendRequest.ID,
		"to_user": receiver.Summary(),
	})
}

// GetFriendRequests lists the caller's incoming requests.
func (fc *FriendController) GetFriendRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	var requests []models.FriendRequest
	if err := fc.db.Preload("FromUser").Where("to_user_id = ?", userID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friend requests.")
		return
	}

	type requestPayload struct {
		ID        uint               `json:"id"`
		FromUser  models.UserSummary `json:"from_user"`
		CreatedAt string             `json:"created_at"`
	}

	payloads := make([]requestPayload, 0, len(requests))
	for i := range requests {
		payloads = append(payloads, requestPayload{
			ID:        requests[i].ID,
			FromUser:  requests[i].FromUser.Summary(),
			CreatedAt: requests[i].CreatedAt.Format(time.RFC3339),
		})
	}

	utils.SendSuccess(c, "Friend requests fetched successfully.", payloads)
}

func (fc *FriendController) findRequest(c *gin.Context) (*models.FriendRequest, bool) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid request ID.", nil)
		return nil, false
	}

	var friendRequest models.FriendRequest
	if err := fc.db.First(&friendRequest, "id = ?", uint(requestID)).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Friend request not found.")
		return nil, false
	}

	return &friendRequest, true
}

// AcceptFriendRequest converts a pending request into the symmetric friends
// edge and removes the request, in one transaction. Only the recipient may
// accept.
func (fc *FriendController) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	friendRequest, ok := fc.findRequest(c)
	if !ok {
		return
	}

	if friendRequest.ToUserID != userID {
		utils.SendError(c, http.StatusForbidden, "Only the recipient can accept a friend request.")
		return
	}

	err := fc.db.Transaction(func(tx *gorm.DB) error {
		user1ID, user2ID := models.CanonicalPair(friendRequest.FromUserID, friendRequest.ToUserID)

		friendship := models.Friendship{
			User1ID: user1ID,
			User2ID: user2ID,
		}
		if err := tx.Create(&friendship).Error; err != nil {
			return err
		}

		return tx.Delete(friendRequest).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to accept friend request.")
		return
	}

	utils.SendSuccess(c, "Friend request accepted.", gin.H{"status": "accepted"})
}

// DeclineFriendRequest deletes a pending request. Only the recipient may
// decline.
func (fc *FriendController) DeclineFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	friendRequest, ok := fc.findRequest(c)
	if !ok {
		return
	}

	if friendRequest.ToUserID != userID {
		utils.SendError(c, http.StatusForbidden, "Only the recipient can decline a friend request.")
		return
	}

	if err := fc.db.Delete(friendRequest).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to decline friend request.")
		return
	}

	utils.SendSuccess(c, "Friend request declined.", gin.H{"status": "declined"})
}

// CancelFriendRequest withdraws a sent request. Only the sender may cancel.
func (fc *FriendController) CancelFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	friendRequest, ok := fc.findRequest(c)
	if !ok {
		return
	}

	if friendRequest.FromUserID != userID {
		utils.SendError(c, http.StatusForbidden, "Only the sender can cancel a friend request.")
		return
	}

	if err := fc.db.Delete(friendRequest).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to cancel friend request.")
		return
	}

	utils.SendSuccess(c, "Friend request canceled.", gin.H{"status": "canceled"})
}

// Unfriend removes the symmetric edge. Either party can initiate.
func (fc *FriendController) Unfriend(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("id")

	var target models.User
	if err := fc.db.First(&target, "id = ?", targetID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	user1ID, user2ID := models.CanonicalPair(userID, targetID)

	var friendship models.Friendship
	if err := fc.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friendship).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "You are not friends with this user.")
		return
	}

	if err := fc.db.Delete(&friendship).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to remove friend.")
		return
	}

	utils.SendSuccess(c, "Unfriended successfully.", gin.H{"status": "unfriended"})
}

// friendsOf collects the users on the far side of every friendship edge
// touching userID.
func friendsOf(db *gorm.DB, userID string) ([]models.User, error) {
	var friendships []models.Friendship
	if err := db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&friendships).Error; err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.User1ID == userID {
			friendIDs = append(friendIDs, friendship.User2ID)
		} else {
			friendIDs = append(friendIDs, friendship.User1ID)
		}
	}

	if len(friendIDs) == 0 {
		return []models.User{}, nil
	}

	var friends []models.User
	if err := db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// GetFriendshipStatus returns the target's profile summary together with the
// projected relationship status relative to the caller.
func (fc *FriendController) GetFriendshipStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("id")

	var target models.User
	if err := fc.db.Preload("Interests").First(&target, "id = ?", targetID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	status, requestID := relationshipStatus(fc.db, userID, targetID)

	friends, err := friendsOf(fc.db, targetID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends.")
		return
	}

	friendSummaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		friendSummaries = append(friendSummaries, friends[i].Summary())
	}

	interests := make([]string, 0, len(target.Interests))
	for _, interest := range target.Interests {
		interests = append(interests, interest.Name)
	}

	var eventsCount int64
	fc.db.Model(&models.Event{}).Where("creator_id = ?", targetID).Count(&eventsCount)

	data := gin.H{
		"id":           target.ID,
		"username":     target.Username,
		"interests":    interests,
		"friends":      friendSummaries,
		"events_count": eventsCount,
		"status":       status,
	}
	if requestID != 0 {
		data["request_id"] = requestID
	} else {
		data["request_id"] = nil
	}

	utils.SendSuccess(c, "Friendship status fetched successfully.", data)
}

// GetMyFriends lists the caller's friends.
func (fc *FriendController) GetMyFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	friends, err := friendsOf(fc.db, userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends.")
		return
	}

	summaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		summaries = append(summaries, friends[i].Summary())
	}

	utils.SendSuccess(c, "Friends fetched successfully.", summaries)
}
