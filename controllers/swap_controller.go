package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

type SwapController struct {
	DB *gorm.DB
}

func NewSwapController(db *gorm.DB) *SwapController {
	return &SwapController{DB: db}
}

func (sc *SwapController) CreateSwapRequest(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Recipient        uint   `json:"recipient" binding:"required"`
		RequestedSkill   string `json:"requestedSkill" binding:"required"`
		OfferedSkill     string `json:"offeredSkill" binding:"required"`
		Message          string `json:"message" binding:"max=500"`
		ProposedDuration string `json:"proposedDuration"`
		ProposedSchedule string `json:"proposedSchedule"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Recipient == currentUser.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot request swap with yourself"})
		return
	}

	var recipient models.User
	if err := sc.DB.First(&recipient, input.Recipient).Error; err != nil || !recipient.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found or inactive"})
		return
	}

	var existing models.SwapRequest
	err := sc.DB.Where("requester_id = ? AND recipient_id = ? AND status = ?",
		currentUser.UserID, input.Recipient, models.SwapStatusPending).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You already have a pending request with this user"})
		return
	}

	swapRequest := models.SwapRequest{
		RequesterID:      currentUser.UserID,
		RecipientID:      input.Recipient,
		RequestedSkill:   input.RequestedSkill,
		OfferedSkill:     input.OfferedSkill,
		Message:          input.Message,
		Status:           models.SwapStatusPending,
		ProposedDuration: input.ProposedDuration,
		ProposedSchedule: input.ProposedSchedule,
	}

	if err := sc.DB.Create(&swapRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create swap request"})
		return
	}

	sc.DB.Preload("Requester").Preload("Recipient").First(&swapRequest, swapRequest.ID)
	swapRequest.Requester.Email = ""
	swapRequest.Recipient.Email = ""

	c.JSON(http.StatusCreated, gin.H{"message": "Swap request created successfully", "swapRequest": swapRequest})
}

func (sc *SwapController) GetMyRequests(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	page, limit, offset := pageParams(c, 10)

	query := sc.DB.Model(&models.SwapRequest{})
	switch c.DefaultQuery("type", "all") {
	case "sent":
		query = query.Where("requester_id = ?", currentUser.UserID)
	case "received":
		query = query.Where("recipient_id = ?", currentUser.UserID)
	default:
		query = query.Where("requester_id = ? OR recipient_id = ?", currentUser.UserID, currentUser.UserID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var swapRequests []models.SwapRequest
	if err := query.Preload("Requester").Preload("Recipient").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&swapRequests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch swap requests"})
		return
	}

	for i := range swapRequests {
		swapRequests[i].Requester.Email = ""
		swapRequests[i].Recipient.Email = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"swapRequests": swapRequests,
		"totalPages":   totalPages(total, limit),
		"currentPage":  page,
		"total":        total,
	})
}

// UpdateStatus drives the swap state machine. The transition table is strict:
// an illegal edge is a 400 even for a participant.
func (sc *SwapController) UpdateStatus(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var swapRequest models.SwapRequest
	if err := sc.DB.First(&swapRequest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Swap request not found"})
		return
	}

	isRecipient := swapRequest.RecipientID == currentUser.UserID
	isRequester := swapRequest.RequesterID == currentUser.UserID

	if !isRecipient && !isRequester {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this request"})
		return
	}

	if !models.ValidSwapTransition(swapRequest.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot change status from " + swapRequest.Status + " to " + input.Status})
		return
	}

	switch input.Status {
	case models.SwapStatusAccepted, models.SwapStatusRejected:
		if !isRecipient {
			c.JSON(http.StatusForbidden, gin.H{"message": "Only recipient can accept or reject requests"})
			return
		}
	case models.SwapStatusCancelled:
		if !isRequester {
			c.JSON(http.StatusForbidden, gin.H{"message": "Only requester can cancel requests"})
			return
		}
	}

	now := time.Now()
	swapRequest.Status = input.Status
	switch input.Status {
	case models.SwapStatusAccepted:
		swapRequest.AcceptedAt = &now
	case models.SwapStatusCancelled:
		swapRequest.CancelledAt = &now
	case models.SwapStatusCompleted:
		swapRequest.CompletedAt = &now
	}

	if err := sc.DB.Save(&swapRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update swap request"})
		return
	}

	sc.DB.Preload("Requester").Preload("Recipient").First(&swapRequest, swapRequest.ID)
	swapRequest.Requester.Email = ""
	swapRequest.Recipient.Email = ""

	c.JSON(http.StatusOK, gin.H{"message": "Swap request updated successfully", "swapRequest": swapRequest})
}

func (sc *SwapController) DeleteSwapRequest(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var swapRequest models.SwapRequest
	if err := sc.DB.First(&swapRequest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Swap request not found"})
		return
	}

	if swapRequest.RequesterID != currentUser.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only requester can delete the request"})
		return
	}

	if swapRequest.Status != models.SwapStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Can only delete pending requests"})
		return
	}

	if err := sc.DB.Delete(&swapRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete swap request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Swap request deleted successfully"})
}

// GetStats backs the user dashboard.
func (sc *SwapController) GetStats(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var totalSwaps, completedSwaps, pendingRequests int64

	sc.DB.Model(&models.SwapRequest{}).
		Where("requester_id = ? OR recipient_id = ?", currentUser.UserID, currentUser.UserID).
		Count(&totalSwaps)

	sc.DB.Model(&models.SwapRequest{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			currentUser.UserID, currentUser.UserID, models.SwapStatusCompleted).
		Count(&completedSwaps)

	sc.DB.Model(&models.SwapRequest{}).
		Where("recipient_id = ? AND status = ?", currentUser.UserID, models.SwapStatusPending).
		Count(&pendingRequests)

	var user models.User
	sc.DB.First(&user, currentUser.UserID)

	c.JSON(http.StatusOK, gin.H{
		"totalSwaps":      totalSwaps,
		"completedSwaps":  completedSwaps,
		"pendingRequests": pendingRequests,
		"averageRating":   user.Rating.Average,
		"ratingCount":     user.Rating.Count,
	})
}
