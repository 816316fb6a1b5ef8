package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
	"github.com/skill-swap/api-go/middleware"
	"github.com/skill-swap/api-go/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func adminRouter(db *gorm.DB, user *models.User) *gin.Engine {
	ac := controllers.NewAdminController(db)
	r := gin.New()
	g := r.Group("/api/admin", authAs(user), middleware.RequireAdmin())
	g.GET("/stats", ac.GetStats)
	g.POST("/moderate/skills/:userId", ac.ModerateSkills)
	g.PATCH("/users/:userId/ban", ac.BanUser)
	g.GET("/swaps", ac.GetSwaps)
	g.POST("/messages", ac.CreateMessage)
	g.GET("/messages", ac.GetMessages)
	g.PATCH("/messages/:messageId", ac.UpdateMessage)
	g.POST("/reports/generate", ac.GenerateReport)
	g.GET("/reports/:reportId/download", ac.DownloadReport)
	g.GET("/moderation-logs", ac.GetModerationLogs)
	return r
}

func TestAdminGateRejectsUsers(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	w := doRequest(t, adminRouter(db, user), "GET", "/api/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminStats(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	db.Model(bob).Update("is_active", false)

	createSwap(t, db, alice, bob, models.SwapStatusPending)
	createSwap(t, db, alice, bob, models.SwapStatusCompleted)

	w := doRequest(t, adminRouter(db, admin), "GET", "/api/admin/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	assert.EqualValues(t, 3, stats["totalUsers"])
	assert.EqualValues(t, 2, stats["activeUsers"])
	assert.EqualValues(t, 2, stats["totalSwaps"])
	assert.EqualValues(t, 1, stats["pendingSwaps"])
	assert.EqualValues(t, 1, stats["completedSwaps"])
}

func TestModerateSkills(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	alice.SkillsOffered = []models.OfferedSkill{
		{Skill: "Guitar", Experience: "Advanced"},
		{Skill: "Spam Skill", Experience: "Beginner"},
	}
	db.Save(alice)

	path := fmt.Sprintf("/api/admin/moderate/skills/%d", alice.ID)

	// out-of-range index
	w := doRequest(t, adminRouter(db, admin), "POST", path, gin.H{
		"action": "reject_skill", "skillType": "offered", "skillIndex": 5, "reason": "spam",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, adminRouter(db, admin), "POST", path, gin.H{
		"action": "reject_skill", "skillType": "offered", "skillIndex": 1, "reason": "spam",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, alice.ID)
	assert.Len(t, updated.SkillsOffered, 1)
	assert.Equal(t, "Guitar", updated.SkillsOffered[0].Skill)

	var logEntry models.ModerationLog
	assert.NoError(t, db.Where("target_user_id = ?", alice.ID).First(&logEntry).Error)
	assert.Equal(t, models.ModActionSkillRejected, logEntry.Action)
	assert.Equal(t, "medium", logEntry.Severity)

	var details map[string]interface{}
	assert.NoError(t, json.Unmarshal(logEntry.Details, &details))
	assert.Equal(t, "offered", details["skillType"])
}

func TestBanAndUnban(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	path := fmt.Sprintf("/api/admin/users/%d/ban", alice.ID)

	// ban for 7 days
	w := doRequest(t, adminRouter(db, admin), "PATCH", path, gin.H{"reason": "abuse", "duration": 7})
	assert.Equal(t, http.StatusOK, w.Code)

	var banned models.User
	db.First(&banned, alice.ID)
	assert.False(t, banned.IsActive)
	assert.NotNil(t, banned.BanExpiresAt)

	var logEntry models.ModerationLog
	assert.NoError(t, db.Where("target_user_id = ? AND action = ?", alice.ID, models.ModActionUserBanned).First(&logEntry).Error)
	assert.Equal(t, "high", logEntry.Severity)

	// unban clears the expiry
	w = doRequest(t, adminRouter(db, admin), "PATCH", path, gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)

	// reload into a fresh struct; scanning a NULL column leaves a stale
	// pointer value in place
	var unbanned models.User
	db.First(&unbanned, alice.ID)
	assert.True(t, unbanned.IsActive)
	assert.Nil(t, unbanned.BanExpiresAt)

	var unbanCount int64
	db.Model(&models.ModerationLog{}).
		Where("target_user_id = ? AND action = ?", alice.ID, models.ModActionUserUnbanned).
		Count(&unbanCount)
	assert.EqualValues(t, 1, unbanCount)
}

func TestPlatformMessageAdminFlow(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	r := adminRouter(db, admin)

	w := doRequest(t, r, "POST", "/api/admin/messages", gin.H{
		"title": "Maintenance window", "content": "Down Sunday", "type": "maintenance", "priority": "high",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, "GET", "/api/admin/messages", nil)
	body := decodeBody(t, w)
	assert.Len(t, body["messages"], 1)

	var msg models.Message
	db.First(&msg)
	assert.True(t, msg.IsActive)

	w = doRequest(t, r, "PATCH", fmt.Sprintf("/api/admin/messages/%d", msg.ID), gin.H{"isActive": false})
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&msg, msg.ID)
	assert.False(t, msg.IsActive)
}

func TestGenerateAndDownloadReport(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	createSwap(t, db, alice, bob, models.SwapStatusCompleted)

	r := adminRouter(db, admin)

	w := doRequest(t, r, "POST", "/api/admin/reports/generate", gin.H{
		"reportType": "swap_stats", "startDate": "2000-01-01", "endDate": "2100-01-01",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var report models.Report
	assert.NoError(t, db.First(&report).Error)
	assert.Equal(t, models.ReportSwapStats, report.ReportType)
	assert.Contains(t, report.FileName, "swap_stats_2000-01-01_to_2100-01-01")
	assert.EqualValues(t, len(report.Data), report.FileSize)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(report.Data, &payload))
	assert.EqualValues(t, 1, payload["summary"].(map[string]interface{})["totalSwaps"])

	// unknown type
	w = doRequest(t, r, "POST", "/api/admin/reports/generate", gin.H{
		"reportType": "bogus", "startDate": "2000-01-01", "endDate": "2100-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// download increments the counter and streams the stored payload
	w = doRequest(t, r, "GET", fmt.Sprintf("/api/admin/reports/%d/download", report.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), report.FileName)

	db.First(&report, report.ID)
	assert.EqualValues(t, 1, report.DownloadCount)
}

func TestSkillAnalyticsReport(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	alice.SkillsOffered = []models.OfferedSkill{{Skill: "Guitar", Experience: "Advanced"}}
	db.Save(alice)
	bob.SkillsOffered = []models.OfferedSkill{{Skill: "Guitar", Experience: "Beginner"}}
	bob.SkillsWanted = []models.WantedSkill{{Skill: "Spanish", Urgency: "High"}}
	db.Save(bob)

	w := doRequest(t, adminRouter(db, admin), "POST", "/api/admin/reports/generate", gin.H{
		"reportType": "skill_analytics", "startDate": "2000-01-01", "endDate": "2100-01-01",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var report models.Report
	db.Where("report_type = ?", models.ReportSkillAnalytics).First(&report)

	var payload struct {
		SkillsOffered []struct {
			Key   string `json:"key"`
			Count int64  `json:"count"`
		} `json:"skillsOffered"`
	}
	assert.NoError(t, json.Unmarshal(report.Data, &payload))
	assert.Len(t, payload.SkillsOffered, 1)
	assert.Equal(t, "Guitar", payload.SkillsOffered[0].Key)
	assert.EqualValues(t, 2, payload.SkillsOffered[0].Count)
}

func TestModerationLogFilters(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	db.Create(&models.ModerationLog{
		ModeratorID: admin.ID, TargetUserID: alice.ID,
		Action: models.ModActionUserBanned, Reason: "abuse", Severity: "high",
	})
	db.Create(&models.ModerationLog{
		ModeratorID: admin.ID, TargetUserID: alice.ID,
		Action: models.ModActionSkillRejected, Reason: "spam", Severity: "medium",
	})

	r := adminRouter(db, admin)

	w := doRequest(t, r, "GET", "/api/admin/moderation-logs", nil)
	assert.Len(t, decodeBody(t, w)["logs"], 2)

	w = doRequest(t, r, "GET", "/api/admin/moderation-logs?action=user_banned", nil)
	assert.Len(t, decodeBody(t, w)["logs"], 1)

	w = doRequest(t, r, "GET", "/api/admin/moderation-logs?severity=medium", nil)
	assert.Len(t, decodeBody(t, w)["logs"], 1)
}
