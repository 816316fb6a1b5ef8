package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func (ac *AdminController) GetStats(c *gin.Context) {
	var totalUsers, activeUsers, totalSwaps, pendingSwaps, completedSwaps, totalRatings int64

	ac.DB.Model(&models.User{}).Count(&totalUsers)
	ac.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&activeUsers)
	ac.DB.Model(&models.SwapRequest{}).Count(&totalSwaps)
	ac.DB.Model(&models.SwapRequest{}).Where("status = ?", models.SwapStatusPending).Count(&pendingSwaps)
	ac.DB.Model(&models.SwapRequest{}).Where("status = ?", models.SwapStatusCompleted).Count(&completedSwaps)
	ac.DB.Model(&models.Rating{}).Count(&totalRatings)

	var averageRating float64
	ac.DB.Model(&models.Rating{}).Select("COALESCE(AVG(rating), 0)").Scan(&averageRating)

	var recentUsers []models.User
	ac.DB.Order("created_at DESC").Limit(5).Find(&recentUsers)

	var recentSwaps []models.SwapRequest
	ac.DB.Preload("Requester").Preload("Recipient").Order("created_at DESC").Limit(5).Find(&recentSwaps)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalUsers":     totalUsers,
			"activeUsers":    activeUsers,
			"totalSwaps":     totalSwaps,
			"pendingSwaps":   pendingSwaps,
			"completedSwaps": completedSwaps,
			"totalRatings":   totalRatings,
			"averageRating":  averageRating,
		},
		"recentActivity": gin.H{
			"users": recentUsers,
			"swaps": recentSwaps,
		},
	})
}

// ModerateSkills removes a skill entry by positional index from the target
// user's offered or wanted list. Index addressing is racy under concurrent
// profile edits; that weakness is inherited from the original design.
func (ac *AdminController) ModerateSkills(c *gin.Context) {
	moderator := utils.GetUser(c)

	var input struct {
		Action     string `json:"action" binding:"required"`
		SkillType  string `json:"skillType" binding:"required,oneof=offered wanted"`
		SkillIndex int    `json:"skillIndex"`
		Reason     string `json:"reason" binding:"required,max=500"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Action != "reject_skill" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid moderation action"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, c.Param("userId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var removed interface{}
	if input.SkillType == "offered" {
		if input.SkillIndex < 0 || input.SkillIndex >= len(user.SkillsOffered) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Skill index out of range"})
			return
		}
		removed = user.SkillsOffered[input.SkillIndex]
		user.SkillsOffered = append(user.SkillsOffered[:input.SkillIndex], user.SkillsOffered[input.SkillIndex+1:]...)
	} else {
		if input.SkillIndex < 0 || input.SkillIndex >= len(user.SkillsWanted) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Skill index out of range"})
			return
		}
		removed = user.SkillsWanted[input.SkillIndex]
		user.SkillsWanted = append(user.SkillsWanted[:input.SkillIndex], user.SkillsWanted[input.SkillIndex+1:]...)
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	details, _ := json.Marshal(gin.H{"skillType": input.SkillType, "rejectedSkill": removed})
	ac.DB.Create(&models.ModerationLog{
		ModeratorID:  moderator.UserID,
		TargetUserID: user.ID,
		Action:       models.ModActionSkillRejected,
		Reason:       input.Reason,
		Details:      details,
		Severity:     "medium",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Moderation action completed successfully", "user": user})
}

// BanUser toggles the target's active flag. Banning with a duration (days)
// sets banExpiresAt; unbanning clears it. Expiry itself is enforced lazily
// at authentication.
func (ac *AdminController) BanUser(c *gin.Context) {
	moderator := utils.GetUser(c)

	var input struct {
		Reason   string `json:"reason" binding:"max=500"`
		Duration int    `json:"duration"` // days, 0 = indefinite
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, c.Param("userId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	wasBanned := !user.IsActive
	user.IsActive = !user.IsActive

	if !user.IsActive && input.Duration > 0 {
		expiry := time.Now().Add(time.Duration(input.Duration) * 24 * time.Hour)
		user.BanExpiresAt = &expiry
	} else {
		user.BanExpiresAt = nil
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	action := models.ModActionUserBanned
	if wasBanned {
		action = models.ModActionUserUnbanned
	}

	reason := input.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	details, _ := json.Marshal(gin.H{"duration": input.Duration})
	ac.DB.Create(&models.ModerationLog{
		ModeratorID:  moderator.UserID,
		TargetUserID: user.ID,
		Action:       action,
		Reason:       reason,
		Details:      details,
		Severity:     "high",
	})

	status := "banned"
	if user.IsActive {
		status = "unbanned"
	}
	c.JSON(http.StatusOK, gin.H{"message": "User " + status + " successfully", "user": user})
}

func (ac *AdminController) GetSwaps(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	query := ac.DB.Model(&models.SwapRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var swaps []models.SwapRequest
	if err := query.Preload("Requester").Preload("Recipient").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&swaps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch swap requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"swaps":       swaps,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (ac *AdminController) CreateMessage(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Title     string     `json:"title" binding:"required,max=100"`
		Content   string     `json:"content" binding:"required,max=1000"`
		Type      string     `json:"type" binding:"omitempty,oneof=announcement maintenance feature warning"`
		Priority  string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Type == "" {
		input.Type = models.MessageTypeAnnouncement
	}
	if input.Priority == "" {
		input.Priority = "medium"
	}

	message := models.Message{
		Title:       input.Title,
		Content:     input.Content,
		Type:        input.Type,
		Priority:    input.Priority,
		IsActive:    true,
		ExpiresAt:   input.ExpiresAt,
		CreatedByID: currentUser.UserID,
		ReadBy:      []models.ReadReceipt{},
	}

	if err := ac.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Platform message created successfully", "data": message})
}

func (ac *AdminController) GetMessages(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	var total int64
	ac.DB.Model(&models.Message{}).Count(&total)

	var messages []models.Message
	if err := ac.DB.Preload("CreatedBy").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":    messages,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (ac *AdminController) UpdateMessage(c *gin.Context) {
	var input struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var message models.Message
	if err := ac.DB.First(&message, c.Param("messageId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
		return
	}

	message.IsActive = *input.IsActive
	if err := ac.DB.Save(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message updated successfully", "data": message})
}

func (ac *AdminController) GenerateReport(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		ReportType string `json:"reportType" binding:"required"`
		StartDate  string `json:"startDate" binding:"required"`
		EndDate    string `json:"endDate" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid start date"})
		return
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid end date"})
		return
	}

	var payload interface{}
	switch input.ReportType {
	case models.ReportUserActivity:
		payload = ac.userActivityReport(start, end)
	case models.ReportSwapStats:
		payload = ac.swapStatsReport(start, end)
	case models.ReportFeedbackLogs:
		payload = ac.feedbackLogsReport(start, end)
	case models.ReportSkillAnalytics:
		payload = ac.skillAnalyticsReport()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid report type"})
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate report"})
		return
	}

	fileName := fmt.Sprintf("%s_%s_to_%s_%s.json",
		input.ReportType,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		strings.Split(uuid.New().String(), "-")[0])

	report := models.Report{
		ReportType:    input.ReportType,
		GeneratedByID: currentUser.UserID,
		DateRange:     models.DateRange{StartDate: start, EndDate: end},
		Data:          data,
		FileName:      fileName,
		FileSize:      int64(len(data)),
	}

	if err := ac.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report generated successfully", "report": report})
}

func (ac *AdminController) DownloadReport(c *gin.Context) {
	var report models.Report
	if err := ac.DB.First(&report, c.Param("reportId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
		return
	}

	ac.DB.Model(&report).UpdateColumn("download_count", gorm.Expr("download_count + 1"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, "application/json", report.Data)
}

func (ac *AdminController) GetModerationLogs(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	query := ac.DB.Model(&models.ModerationLog{})
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var total int64
	query.Count(&total)

	var logs []models.ModerationLog
	if err := query.Preload("Moderator").Preload("TargetUser").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch moderation logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":        logs,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// --- report aggregations ---

type countRow struct {
	Key   string `gorm:"column:key" json:"key"`
	Count int64  `gorm:"column:count" json:"count"`
}

func (ac *AdminController) userActivityReport(start, end time.Time) gin.H {
	var newUsers, activeUsers int64
	ac.DB.Model(&models.User{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&newUsers)
	ac.DB.Model(&models.User{}).
		Where("is_active = ? AND updated_at BETWEEN ? AND ?", true, start, end).
		Count(&activeUsers)

	var usersByLocation []countRow
	ac.DB.Model(&models.User{}).
		Select("location AS key, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("location").
		Order("count DESC").
		Scan(&usersByLocation)

	return gin.H{
		"summary":         gin.H{"newUsers": newUsers, "activeUsers": activeUsers},
		"usersByLocation": usersByLocation,
		"generatedAt":     time.Now(),
	}
}

func (ac *AdminController) swapStatsReport(start, end time.Time) gin.H {
	var totalSwaps int64
	ac.DB.Model(&models.SwapRequest{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&totalSwaps)

	var swapsByStatus []countRow
	ac.DB.Model(&models.SwapRequest{}).
		Select("status AS key, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("status").
		Scan(&swapsByStatus)

	var popularSkills []countRow
	ac.DB.Model(&models.SwapRequest{}).
		Select("requested_skill AS key, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("requested_skill").
		Order("count DESC").
		Limit(10).
		Scan(&popularSkills)

	return gin.H{
		"summary":       gin.H{"totalSwaps": totalSwaps},
		"swapsByStatus": swapsByStatus,
		"popularSkills": popularSkills,
		"generatedAt":   time.Now(),
	}
}

func (ac *AdminController) feedbackLogsReport(start, end time.Time) gin.H {
	var ratings []models.Rating
	ac.DB.Where("created_at BETWEEN ? AND ?", start, end).
		Preload("Rater").Preload("Rated").
		Find(&ratings)

	for i := range ratings {
		ratings[i].Rater.Email = ""
		ratings[i].Rated.Email = ""
	}

	var averageRating float64
	ac.DB.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("created_at BETWEEN ? AND ?", start, end).
		Scan(&averageRating)

	var distribution []countRow
	ac.DB.Model(&models.Rating{}).
		Select("rating AS key, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("rating").
		Order("rating ASC").
		Scan(&distribution)

	return gin.H{
		"ratings":            ratings,
		"averageRating":      averageRating,
		"ratingDistribution": distribution,
		"generatedAt":        time.Now(),
	}
}

// skillAnalyticsReport counts skills in Go: the lists live in JSON columns,
// which have no portable SQL unwind across the Postgres and SQLite drivers.
func (ac *AdminController) skillAnalyticsReport() gin.H {
	var users []models.User
	ac.DB.Select("skills_offered", "skills_wanted").Find(&users)

	offered := map[string]int64{}
	wanted := map[string]int64{}
	for _, u := range users {
		for _, s := range u.SkillsOffered {
			offered[s.Skill]++
		}
		for _, s := range u.SkillsWanted {
			wanted[s.Skill]++
		}
	}

	return gin.H{
		"skillsOffered": topSkills(offered, 20),
		"skillsWanted":  topSkills(wanted, 20),
		"generatedAt":   time.Now(),
	}
}

func topSkills(counts map[string]int64, n int) []countRow {
	rows := make([]countRow, 0, len(counts))
	for skill, count := range counts {
		rows = append(rows, countRow{Key: skill, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
