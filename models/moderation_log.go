package models

import (
	"encoding/json"
	"time"
)

const (
	ModActionSkillRejected  = "skill_rejected"
	ModActionUserBanned     = "user_banned"
	ModActionUserUnbanned   = "user_unbanned"
	ModActionProfileFlagged = "profile_flagged"
	ModActionContentRemoved = "content_removed"
)

// ModerationLog is an append-only audit trail of admin actions. Entries are
// never updated or deleted.
type ModerationLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ModeratorID  uint `gorm:"not null;index" json:"moderatorId"`
	TargetUserID uint `gorm:"not null;index" json:"targetUserId"`
	Moderator    User `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
	TargetUser   User `gorm:"foreignKey:TargetUserID" json:"targetUser,omitempty"`

	Action   string          `gorm:"size:20;not null;index" json:"action"`
	Reason   string          `gorm:"size:500;not null" json:"reason"`
	Details  json.RawMessage `json:"details,omitempty"`
	Severity string          `gorm:"size:10;default:'medium'" json:"severity"` // low, medium, high, critical
}
