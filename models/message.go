package models

import (
	"time"
)

const (
	MessageTypeAnnouncement = "announcement"
	MessageTypeMaintenance  = "maintenance"
	MessageTypeFeature      = "feature"
	MessageTypeWarning      = "warning"
)

// PriorityRankSQL orders platform messages urgent-first. Priority is stored
// as text, so a plain ORDER BY would sort lexically.
const PriorityRankSQL = "CASE priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"

type ReadReceipt struct {
	UserID uint      `json:"user"`
	ReadAt time.Time `json:"readAt"`
}

// Message is an admin-authored platform announcement broadcast to all users.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"size:1000;not null" json:"content"`
	Type     string `gorm:"size:20;default:'announcement'" json:"type"`
	Priority string `gorm:"size:10;default:'medium'" json:"priority"` // low, medium, high, urgent

	IsActive  bool       `gorm:"default:true;index:idx_message_active" json:"isActive"`
	ExpiresAt *time.Time `gorm:"index:idx_message_active" json:"expiresAt,omitempty"`

	CreatedByID uint `gorm:"not null" json:"createdById"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	ReadBy []ReadReceipt `gorm:"serializer:json" json:"readBy"`
}

func (m *Message) ReadByUser(userID uint) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

func (m *Message) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && !m.ExpiresAt.After(now)
}
