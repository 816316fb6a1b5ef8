package controllers_test

import (
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

func userRouter(db *gorm.DB, user *models.User) *gin.Engine {
	uc := controllers.NewUserController(db)
	r := gin.New()
	g := r.Group("/api/users", authAs(user))
	g.GET("/admin/all", middleware.RequireAdmin(), uc.AllUsers)
	g.PATCH("/admin/:id/toggle-status", middleware.RequireAdmin(), uc.ToggleStatus)
	g.GET("", uc.ListUsers)
	g.PUT("/profile", uc.UpdateProfile)
	g.GET("/:id", uc.GetUser)
	return r
}

func TestListUsersVisibility(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	hidden := createUser(t, db, "Hidden", "hidden@example.com", models.RoleUser)
	db.Model(hidden).Update("is_public", false)
	inactive := createUser(t, db, "Gone", "gone@example.com", models.RoleUser)
	db.Model(inactive).Update("is_active", false)
	_ = bob

	// regular caller: no admins, no private, no inactive, no emails
	w := doRequest(t, userRouter(db, alice), "GET", "/api/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	assert.Len(t, users, 2)
	for _, u := range users {
		entry := u.(map[string]interface{})
		assert.NotEqual(t, "Admin", entry["name"])
		assert.NotContains(t, entry, "email")
	}

	// admin caller sees private profiles, still no admin accounts
	w = doRequest(t, userRouter(db, admin), "GET", "/api/users", nil)
	assert.Len(t, decodeBody(t, w)["users"], 3)
}

func TestListUsersSearch(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	db.Model(alice).Update("location", "Lisbon")
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	bob.SkillsOffered = []models.OfferedSkill{{Skill: "Guitar", Experience: "Advanced"}}
	db.Save(bob)
	viewer := createUser(t, db, "Viewer", "viewer@example.com", models.RoleUser)

	r := userRouter(db, viewer)

	w := doRequest(t, r, "GET", "/api/users?search=lisb", nil)
	users := decodeBody(t, w)["users"].([]interface{})
	assert.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].(map[string]interface{})["name"])

	w = doRequest(t, r, "GET", "/api/users?skill=guit", nil)
	users = decodeBody(t, w)["users"].([]interface{})
	assert.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].(map[string]interface{})["name"])

	w = doRequest(t, r, "GET", "/api/users?search=nobody", nil)
	assert.Len(t, decodeBody(t, w)["users"], 0)
}

func TestGetUserPrivacy(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	hidden := createUser(t, db, "Hidden", "hidden@example.com", models.RoleUser)
	db.Model(hidden).Update("is_public", false)

	hiddenPath := fmt.Sprintf("/api/users/%d", hidden.ID)

	w := doRequest(t, userRouter(db, alice), "GET", hiddenPath, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the owner and admins can view a private profile
	w = doRequest(t, userRouter(db, hidden), "GET", hiddenPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, userRouter(db, admin), "GET", hiddenPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// inactive users read as missing
	db.Model(hidden).Update("is_active", false)
	w = doRequest(t, userRouter(db, admin), "GET", hiddenPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileAllowList(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	w := doRequest(t, userRouter(db, alice), "PUT", "/api/users/profile", gin.H{
		"name":     "Alice Cooper",
		"location": "Lisbon",
		"skillsOffered": []gin.H{
			{"skill": "Guitar", "description": "10 years", "experience": "Advanced"},
		},
		"availability": gin.H{"weekends": true, "timeZone": "Europe/Lisbon"},
		"isPublic":     false,
		// not on the allow-list; must be dropped silently
		"role":     "admin",
		"isActive": false,
		"rating":   gin.H{"average": 5, "count": 100},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, alice.ID)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "Lisbon", updated.Location)
	assert.Len(t, updated.SkillsOffered, 1)
	assert.True(t, updated.Availability.Weekends)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.True(t, updated.IsActive)
	assert.EqualValues(t, 0, updated.Rating.Count)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	r := userRouter(db, alice)

	w := doRequest(t, r, "PUT", "/api/users/profile", gin.H{
		"skillsOffered": []gin.H{{"skill": "Guitar", "experience": "Expert"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, "PUT", "/api/users/profile", gin.H{
		"skillsWanted": []gin.H{{"skill": "   "}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, "PUT", "/api/users/profile", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUserEndpoints(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	// regular users get 403
	w := doRequest(t, userRouter(db, alice), "GET", "/api/users/admin/all", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, userRouter(db, admin), "GET", "/api/users/admin/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["users"], 2)

	togglePath := fmt.Sprintf("/api/users/admin/%d/toggle-status", alice.ID)
	w = doRequest(t, userRouter(db, admin), "PATCH", togglePath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, alice.ID)
	assert.False(t, updated.IsActive)

	w = doRequest(t, userRouter(db, admin), "PATCH", togglePath, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	db.First(&updated, alice.ID)
	assert.True(t, updated.IsActive)
}
