package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

type RatingController struct {
	DB *gorm.DB
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{DB: db}
}

func (rc *RatingController) CreateRating(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		SwapRequestID uint               `json:"swapRequestId" binding:"required"`
		RatedUserID   uint               `json:"ratedUserId" binding:"required"`
		Rating        int                `json:"rating" binding:"required,min=1,max=5"`
		Feedback      string             `json:"feedback" binding:"max=500"`
		Skills        models.SkillScores `json:"skills"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !validSubScores(input.Skills) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sub-scores must be between 1 and 5"})
		return
	}

	var swapRequest models.SwapRequest
	if err := rc.DB.First(&swapRequest, input.SwapRequestID).Error; err != nil || swapRequest.Status != models.SwapStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Can only rate completed swaps"})
		return
	}

	if !swapRequest.IsParticipant(currentUser.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to rate this swap"})
		return
	}

	var existing models.Rating
	err := rc.DB.Where("swap_request_id = ? AND rater_id = ? AND rated_id = ?",
		input.SwapRequestID, currentUser.UserID, input.RatedUserID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already rated this user for this swap"})
		return
	}

	rating := models.Rating{
		SwapRequestID: input.SwapRequestID,
		RaterID:       currentUser.UserID,
		RatedID:       input.RatedUserID,
		Rating:        input.Rating,
		Feedback:      input.Feedback,
		Skills:        input.Skills,
	}

	if err := rc.DB.Create(&rating).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already rated this user for this swap"})
		return
	}

	if err := rc.recomputeUserRating(input.RatedUserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update rating summary"})
		return
	}

	rc.DB.Preload("Rater").Preload("Rated").Preload("SwapRequest").First(&rating, rating.ID)
	rating.Rater.Email = ""
	rating.Rated.Email = ""

	c.JSON(http.StatusCreated, gin.H{"message": "Rating created successfully", "rating": rating})
}

func (rc *RatingController) GetUserRatings(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	userID := c.Param("userId")

	var total int64
	rc.DB.Model(&models.Rating{}).Where("rated_id = ?", userID).Count(&total)

	var ratings []models.Rating
	if err := rc.DB.Where("rated_id = ?", userID).
		Preload("Rater").Preload("SwapRequest").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch ratings"})
		return
	}

	for i := range ratings {
		ratings[i].Rater.Email = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":     ratings,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// recomputeUserRating rescans every rating the user has ever received and
// stores the mean rounded to one decimal. O(n) per new rating; fine at this
// scale.
func (rc *RatingController) recomputeUserRating(userID uint) error {
	var ratings []models.Rating
	if err := rc.DB.Where("rated_id = ?", userID).Find(&ratings).Error; err != nil {
		return err
	}

	if len(ratings) == 0 {
		return nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	average := math.Round(float64(sum)/float64(len(ratings))*10) / 10

	// Save the whole record so the summary goes through the JSON serializer;
	// a raw column update would hand the driver a bare struct.
	var user models.User
	if err := rc.DB.First(&user, userID).Error; err != nil {
		return err
	}
	user.Rating = models.RatingSummary{
		Average: average,
		Count:   int64(len(ratings)),
	}
	return rc.DB.Save(&user).Error
}

func validSubScores(s models.SkillScores) bool {
	for _, v := range []int{s.Communication, s.Reliability, s.Expertise} {
		if v != 0 && (v < 1 || v > 5) {
			return false
		}
	}
	return true
}
