package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validExperience = map[string]bool{"Beginner": true, "Intermediate": true, "Advanced": true}
var validUrgency = map[string]bool{"Low": true, "Medium": true, "High": true}

// ListUsers returns the public member directory. Admin accounts never show
// up; private profiles are visible to admin callers only.
func (uc *UserController) ListUsers(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	page, limit, offset := pageParams(c, 10)

	query := uc.DB.Model(&models.User{}).
		Where("is_active = ?", true).
		Where("role <> ?", models.RoleAdmin)

	if !currentUser.IsAdmin() {
		query = query.Where("is_public = ?", true)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}

	// Skill lists live in JSON columns, so skill search is a substring match
	// over the serialized document.
	if skill := strings.TrimSpace(c.Query("skill")); skill != "" {
		pattern := "%" + strings.ToLower(skill) + "%"
		query = query.Where("LOWER(skills_offered) LIKE ? OR LOWER(skills_wanted) LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	for i := range users {
		users[i].Email = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (uc *UserController) GetUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil || !user.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if !user.IsPublic && !currentUser.IsAdmin() && currentUser.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Profile is private"})
		return
	}

	user.Email = ""
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile accepts an explicit allow-list of fields; anything else in
// the body is dropped without complaint.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Name          *string                `json:"name"`
		Location      *string                `json:"location"`
		ProfilePhoto  *string                `json:"profilePhoto"`
		SkillsOffered *[]models.OfferedSkill `json:"skillsOffered"`
		SkillsWanted  *[]models.WantedSkill  `json:"skillsWanted"`
		Availability  *models.Availability   `json:"availability"`
		IsPublic      *bool                  `json:"isPublic"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" || len(*input.Name) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name must be between 1 and 50 characters"})
			return
		}
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		if len(*input.Location) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Location must be at most 100 characters"})
			return
		}
		user.Location = *input.Location
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = *input.ProfilePhoto
	}
	if input.SkillsOffered != nil {
		for i := range *input.SkillsOffered {
			s := &(*input.SkillsOffered)[i]
			s.Skill = strings.TrimSpace(s.Skill)
			if s.Skill == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Skill name is required"})
				return
			}
			if s.Experience == "" {
				s.Experience = "Beginner"
			}
			if !validExperience[s.Experience] {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid experience level"})
				return
			}
		}
		user.SkillsOffered = *input.SkillsOffered
	}
	if input.SkillsWanted != nil {
		for i := range *input.SkillsWanted {
			s := &(*input.SkillsWanted)[i]
			s.Skill = strings.TrimSpace(s.Skill)
			if s.Skill == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Skill name is required"})
				return
			}
			if s.Urgency == "" {
				s.Urgency = "Medium"
			}
			if !validUrgency[s.Urgency] {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid urgency"})
				return
			}
		}
		user.SkillsWanted = *input.SkillsWanted
	}
	if input.Availability != nil {
		if input.Availability.TimeZone == "" {
			input.Availability.TimeZone = "UTC"
		}
		user.Availability = *input.Availability
	}
	if input.IsPublic != nil {
		user.IsPublic = *input.IsPublic
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// AllUsers is the admin directory, private profiles and emails included.
func (uc *UserController) AllUsers(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	var total int64
	uc.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := uc.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (uc *UserController) ToggleStatus(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user.IsActive = !user.IsActive
	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	status := "deactivated"
	if user.IsActive {
		status = "activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": "User " + status + " successfully", "user": user})
}
