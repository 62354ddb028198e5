// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"perfectspot-api/models"
	"perfectspot-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

const searchResultLimit = 10

type SearchResult struct {
	ID       string                    `json:"id"`
	Username string                    `json:"username"`
	Status   models.RelationshipStatus `json:"status"`
}

// SearchUsers matches usernames by substring, excludes the caller and caps
// results at 10. Each result carries the relationship status relative to the
// caller.
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	query := c.Query("q")
	if query == "" {
		utils.SendSuccess(c, "Search results.", []SearchResult{})
		return
	}

	var users []models.User
	if err := uc.db.Where("username LIKE ?", "%"+query+"%").
		Where("id != ?", userID).
		Limit(searchResultLimit).Find(&users).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to search users.")
		return
	}

	results := make([]SearchResult, 0, len(users))
	for i := range users {
		status, _ := relationshipStatus(uc.db, userID, users[i].ID)
		results = append(results, SearchResult{
			ID:       users[i].ID,
			Username: users[i].Username,
			Status:   status,
		})
	}

	utils.SendSuccess(c, "Search results.", results)
}

// GetProfile returns a user's public profile: username, interests, friends,
// events count.
func (uc *UserController) GetProfile(c *gin.Context) {
	targetID := c.Param("id")

	var user models.User
	if err := uc.db.Preload("Interests").First(&user, "id = ?", targetID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	friends, err := friendsOf(uc.db, targetID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends.")
		return
	}

	friendSummaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		friendSummaries = append(friendSummaries, friends[i].Summary())
	}

	interests := make([]string, 0, len(user.Interests))
	for _, interest := range user.Interests {
		interests = append(interests, interest.Name)
	}

	var eventsCount int64
	uc.db.Model(&models.Event{}).Where("creator_id = ?", targetID).Count(&eventsCount)

	utils.SendSuccess(c, "Profile fetched successfully.", gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"user_type":    user.UserType,
		"interests":    interests,
		"friends":      friendSummaries,
		"events_count": eventsCount,
	})
}
