package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

// GetActiveMessages returns active, unexpired announcements the caller has
// not read yet, urgent first, capped at 10.
func (mc *MessageController) GetActiveMessages(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var messages []models.Message
	if err := mc.DB.Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Preload("CreatedBy").
		Order(models.PriorityRankSQL + " DESC").
		Order("created_at DESC").
		Limit(10).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages"})
		return
	}

	unread := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if !m.ReadByUser(currentUser.UserID) {
			m.CreatedBy.Email = ""
			unread = append(unread, m)
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": unread})
}

// MarkRead appends a read receipt once; marking twice is a no-op.
func (mc *MessageController) MarkRead(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var message models.Message
	if err := mc.DB.First(&message, c.Param("messageId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
		return
	}

	if !message.ReadByUser(currentUser.UserID) {
		message.ReadBy = append(message.ReadBy, models.ReadReceipt{
			UserID: currentUser.UserID,
			ReadAt: time.Now(),
		})
		if err := mc.DB.Save(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark message as read"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
