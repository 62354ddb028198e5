// File: /controllers/review_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"perfectspot-api/models"
	"perfectspot-api/utils"
)

type ReviewController struct {
	db *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{db: db}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewPayload struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Reviewer  string    `json:"reviewer"`
}

func reviewPayload(review *models.Review) ReviewPayload {
	return ReviewPayload{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		Reviewer:  review.Reviewer.Username,
	}
}

func (rc *ReviewController) GetReviews(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := rc.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var reviews []models.Review
	if err := rc.db.Preload("Reviewer").Where("event_id = ?", eventID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch reviews.")
		return
	}

	payloads := make([]ReviewPayload, 0, len(reviews))
	for i := range reviews {
		payloads = append(payloads, reviewPayload(&reviews[i]))
	}

	utils.SendSuccess(c, "Reviews fetched successfully.", payloads)
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := rc.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Review creation failed.", err.Error())
		return
	}

	review := models.Review{
		ID:         uuid.New().String(),
		EventID:    eventID,
		ReviewerID: userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := rc.db.Create(&review).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create review.")
		return
	}

	rc.db.Preload("Reviewer").First(&review, "id = ?", review.ID)

	utils.SendCreated(c, "Review created successfully.", reviewPayload(&review))
}

// authorReview looks up a review scoped to its author. A non-author sees the
// same not-found result as a missing review, so review ownership is never
// disclosed through edit or delete attempts.
func (rc *ReviewController) authorReview(eventID, reviewID, userID string) (*models.Review, error) {
	var review models.Review
	err := rc.db.Where("id = ? AND event_id = ? AND reviewer_id = ?", reviewID, eventID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (rc *ReviewController) UpdateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")
	reviewID := c.Param("review_id")

	review, err := rc.authorReview(eventID, reviewID, userID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Review not found.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Review update failed.", err.Error())
		return
	}

	if req.Rating != nil && !utils.IsValidRating(*req.Rating) {
		utils.SendValidationError(c, "Review update failed.", "rating must be between 1 and 5")
		return
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := rc.db.Model(review).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update review.")
			return
		}
	}

	rc.db.Preload("Reviewer").First(review, "id = ?", review.ID)

	utils.SendSuccess(c, "Review updated successfully.", reviewPayload(review))
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")
	reviewID := c.Param("review_id")

	review, err := rc.authorReview(eventID, reviewID, userID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Review not found.")
		return
	}

	if err := rc.db.Delete(review).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete review.")
		return
	}

	utils.SendSuccess(c, "Review deleted successfully.", nil)
}
