package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationRequest struct {
	Email   string `json:"email" binding:"required,email" example:"citizen@example.com"`
	Subject string `json:"subject" binding:"required" example:"Your application"`
	Message string `json:"message" binding:"required" example:"Please visit the office with your documents."`
}

type NotificationController struct {
	notifier Notifier
}

func NewNotificationController(notifier Notifier) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// Send godoc
// @Summary Send an email to a citizen
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body NotificationRequest true "Recipient, subject and message"
// @Success 200 {object} map[string]interface{} "Email sent"
// @Failure 502 {object} map[string]interface{} "Email failed"
// @Router /notifications/send [post]
func (nc *NotificationController) Send(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := nc.notifier.Send(c.Request.Context(), req.Email, req.Subject, req.Message); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Email failed",
			"error":   err.Error(),
		})
		return
	}
	respondOK(c, http.StatusOK, "Email sent", nil)
}
