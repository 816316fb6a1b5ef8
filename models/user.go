package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type OfferedSkill struct {
	Skill       string `json:"skill"`
	Description string `json:"description,omitempty"`
	Experience  string `json:"experience"` // Beginner, Intermediate, Advanced
}

type WantedSkill struct {
	Skill       string `json:"skill"`
	Description string `json:"description,omitempty"`
	Urgency     string `json:"urgency"` // Low, Medium, High
}

type Availability struct {
	Weekdays bool   `json:"weekdays"`
	Weekends bool   `json:"weekends"`
	Evenings bool   `json:"evenings"`
	TimeZone string `json:"timeZone"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name         string `gorm:"size:50;not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email,omitempty"`
	Password     string `gorm:"not null" json:"-"` // Never expose the hash in JSON
	Location     string `gorm:"size:100" json:"location"`
	ProfilePhoto string `json:"profilePhoto"`

	// Ordered skill lists, stored as JSON documents. Moderation addresses
	// entries by position, so ordering is load-bearing.
	SkillsOffered []OfferedSkill `gorm:"serializer:json" json:"skillsOffered"`
	SkillsWanted  []WantedSkill  `gorm:"serializer:json" json:"skillsWanted"`

	Availability Availability  `gorm:"serializer:json" json:"availability"`
	IsPublic     bool          `gorm:"default:true" json:"isPublic"`
	Role         string        `gorm:"size:10;default:'user'" json:"role"`
	Rating       RatingSummary `gorm:"serializer:json" json:"rating"`

	IsActive     bool       `gorm:"default:true" json:"isActive"`
	BanExpiresAt *time.Time `json:"banExpiresAt,omitempty"`
	JoinedAt     time.Time  `json:"joinedAt"`

	GoogleID *string `gorm:"uniqueIndex" json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// BanExpired reports whether a temporary ban has lapsed. Expiry is enforced
// lazily at authentication time; there is no background sweep.
func (u *User) BanExpired(now time.Time) bool {
	return !u.IsActive && u.BanExpiresAt != nil && now.After(*u.BanExpiresAt)
}
