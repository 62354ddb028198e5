// File: /utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

// Envelope is the uniform response wrapper used across the API.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}

// SendValidationError reports field-level binding failures. Data carries the
// validator output so clients can map messages to form fields.
func SendValidationError(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Data:    details,
	})
}
