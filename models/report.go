package models

import (
	"encoding/json"
	"time"
)

const (
	ReportUserActivity   = "user_activity"
	ReportSwapStats      = "swap_stats"
	ReportFeedbackLogs   = "feedback_logs"
	ReportSkillAnalytics = "skill_analytics"
)

type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Report is an immutable aggregation snapshot generated by an admin. Only the
// download counter is ever touched after creation.
type Report struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReportType    string `gorm:"size:20;not null;index" json:"reportType"`
	GeneratedByID uint   `gorm:"not null;index" json:"generatedById"`
	GeneratedBy   User   `gorm:"foreignKey:GeneratedByID" json:"generatedBy,omitempty"`

	DateRange DateRange       `gorm:"serializer:json" json:"dateRange"`
	Data      json.RawMessage `json:"data"`

	FileName      string `gorm:"not null" json:"fileName"`
	FileSize      int64  `gorm:"not null" json:"fileSize"`
	DownloadCount int64  `gorm:"default:0" json:"downloadCount"`
}
