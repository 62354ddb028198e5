// File: /controllers/event_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"perfectspot-api/models"
	"perfectspot-api/utils"
)

type EventController struct {
	db *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{db: db}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required"`
	Location    string    `json:"location" binding:"required,max=255"`
	Date        time.Time `json:"date" binding:"required"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	ImageURL    *string   `json:"image_url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	ImageURL    *string    `json:"image_url"`
}

// EventPayload is the read representation of an event with flags computed
// relative to the requesting user (all false/zero for anonymous callers).
type EventPayload struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	ImageURL       *string   `json:"image_url"`
	IsPromoted     bool      `json:"is_promoted"`
	IsOwner        bool      `json:"is_owner"`
	IsAttending    bool      `json:"is_attending"`
	AttendeesCount int64     `json:"attendees_count"`
}

func (ec *EventController) eventPayload(event *models.Event, viewerID string) EventPayload {
	var attendeesCount int64
	ec.db.Model(&models.EventAttendee{}).Where("event_id = ?", event.ID).Count(&attendeesCount)

	isAttending := false
	if viewerID != "" {
		var attendee models.EventAttendee
		if err := ec.db.Where("event_id = ? AND user_id = ?", event.ID, viewerID).First(&attendee).Error; err == nil {
			isAttending = true
		}
	}

	return EventPayload{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		Date:           event.Date,
		Latitude:       event.Latitude,
		Longitude:      event.Longitude,
		ImageURL:       event.ImageURL,
		IsPromoted:     event.IsPromoted,
		IsOwner:        viewerID != "" && event.CreatorID == viewerID,
		IsAttending:    isAttending,
		AttendeesCount: attendeesCount,
	}
}

// GetEvents lists events, open to anonymous callers. Supports title prefix
// and promoted-only filters plus pagination.
func (ec *EventController) GetEvents(c *gin.Context) {
	viewerID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := ec.db.Model(&models.Event{})

	if title := c.Query("title"); title != "" {
		query = query.Where("title LIKE ?", title+"%")
	}

	if c.Query("promoted") == "true" {
		query = query.Where("is_promoted = ?", true)
	}

	var events []models.Event
	if err := query.Order("date ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events.")
		return
	}

	payloads := make([]EventPayload, 0, len(events))
	for i := range events {
		payloads = append(payloads, ec.eventPayload(&events[i], viewerID))
	}

	utils.SendSuccess(c, "Events fetched successfully.", payloads)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Event creation failed.", err.Error())
		return
	}

	if req.Latitude != nil && !utils.IsValidLatitude(*req.Latitude) {
		utils.SendValidationError(c, "Event creation failed.", "latitude must be between -90 and 90")
		return
	}
	if req.Longitude != nil && !utils.IsValidLongitude(*req.Longitude) {
		utils.SendValidationError(c, "Event creation failed.", "longitude must be between -180 and 180")
		return
	}

	// is_promoted always starts false regardless of input; promotion is a
	// separate gated operation
	event := models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		CreatorID:   userID,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	utils.SendCreated(c, "Event created successfully.", ec.eventPayload(&event, userID))
}

func (ec *EventController) GetEvent(c *gin.Context) {
	viewerID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	utils.SendSuccess(c, "Event fetched successfully.", ec.eventPayload(&event, viewerID))
}

// canManageEvent reports whether the user may edit or delete the event:
// the creator always can, staff can manage any event.
func (ec *EventController) canManageEvent(event *models.Event, userID string) bool {
	if event.CreatorID == userID {
		return true
	}

	var user models.User
	if err := ec.db.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return user.IsStaff
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if !ec.canManageEvent(&event, userID) {
		utils.SendError(c, http.StatusForbidden, "You do not have permission to edit this event.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Event update failed.", err.Error())
		return
	}

	// Validate everything before writing anything: an update either applies
	// in full or not at all
	if req.Latitude != nil && !utils.IsValidLatitude(*req.Latitude) {
		utils.SendValidationError(c, "Event update failed.", "latitude must be between -90 and 90")
		return
	}
	if req.Longitude != nil && !utils.IsValidLongitude(*req.Longitude) {
		utils.SendValidationError(c, "Event update failed.", "longitude must be between -180 and 180")
		return
	}
	if req.Title != nil && *req.Title == "" {
		utils.SendValidationError(c, "Event update failed.", "title cannot be empty")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update event.")
			return
		}
	}

	utils.SendSuccess(c, "Event updated successfully.", ec.eventPayload(&event, userID))
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if !ec.canManageEvent(&event, userID) {
		utils.SendError(c, http.StatusForbidden, "You do not have permission to delete this event.")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	utils.SendSuccess(c, "Event deleted successfully.", nil)
}

// PromoteEvent sets is_promoted. Only the creator may promote, and only
// organization accounts qualify. There is no demote.
func (ec *EventController) PromoteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if event.CreatorID != userID {
		utils.SendError(c, http.StatusForbidden, "Only the event creator can promote an event.")
		return
	}

	var user models.User
	if err := ec.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	if !user.IsOrganization() {
		utils.SendError(c, http.StatusForbidden, "Only organization accounts can promote events.")
		return
	}

	if err := ec.db.Model(&event).Update("is_promoted", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to promote event.")
		return
	}

	event.IsPromoted = true
	utils.SendSuccess(c, "Event promoted successfully.", ec.eventPayload(&event, userID))
}

// ToggleRSVP flips the caller's attendance. Two consecutive calls restore the
// original attendee set.
func (ec *EventController) ToggleRSVP(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var attendee models.EventAttendee
	err := ec.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&attendee).Error

	isAttending := false
	if err == nil {
		if err := ec.db.Delete(&attendee).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update attendance.")
			return
		}
	} else {
		attendee = models.EventAttendee{
			EventID: eventID,
			UserID:  userID,
		}
		if err := ec.db.Create(&attendee).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update attendance.")
			return
		}
		isAttending = true
	}

	var attendeesCount int64
	ec.db.Model(&models.EventAttendee{}).Where("event_id = ?", eventID).Count(&attendeesCount)

	utils.SendSuccess(c, "Attendance updated successfully.", gin.H{
		"is_attending":    isAttending,
		"attendees_count": attendeesCount,
	})
}
