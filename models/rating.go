package models

import (
	"time"
)

type SkillScores struct {
	Communication int `json:"communication,omitempty"`
	Reliability   int `json:"reliability,omitempty"`
	Expertise     int `json:"expertise,omitempty"`
}

type Rating struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SwapRequestID uint        `gorm:"not null;uniqueIndex:idx_rating_triple" json:"swapRequestId"`
	RaterID       uint        `gorm:"not null;uniqueIndex:idx_rating_triple" json:"raterId"`
	RatedID       uint        `gorm:"not null;uniqueIndex:idx_rating_triple;index" json:"ratedId"`
	SwapRequest   SwapRequest `gorm:"foreignKey:SwapRequestID" json:"swapRequest,omitempty"`
	Rater         User        `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rated         User        `gorm:"foreignKey:RatedID" json:"rated,omitempty"`

	Rating   int         `gorm:"not null" json:"rating"` // 1-5
	Feedback string      `gorm:"size:500" json:"feedback,omitempty"`
	Skills   SkillScores `gorm:"serializer:json" json:"skills"`
}
