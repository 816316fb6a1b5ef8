package models

import (
	"time"
)

const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
	SwapStatusCancelled = "cancelled"
)

type SwapRequest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RequesterID uint `gorm:"not null;index:idx_swap_pair" json:"requesterId"`
	RecipientID uint `gorm:"not null;index:idx_swap_pair" json:"recipientId"`
	Requester   User `gorm:"foreignKey:RequesterID" json:"requester"`
	Recipient   User `gorm:"foreignKey:RecipientID" json:"recipient"`

	RequestedSkill string `gorm:"not null" json:"requestedSkill"`
	OfferedSkill   string `gorm:"not null" json:"offeredSkill"`
	Message        string `gorm:"size:500" json:"message,omitempty"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	ProposedDuration string `json:"proposedDuration,omitempty"`
	ProposedSchedule string `json:"proposedSchedule,omitempty"`

	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// swapTransitions is the whole state machine: pending fans out to
// accepted/rejected/cancelled, accepted can only complete. Terminal states
// have no exits.
var swapTransitions = map[string][]string{
	SwapStatusPending:  {SwapStatusAccepted, SwapStatusRejected, SwapStatusCancelled},
	SwapStatusAccepted: {SwapStatusCompleted},
}

func ValidSwapTransition(from, to string) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *SwapRequest) IsParticipant(userID uint) bool {
	return s.RequesterID == userID || s.RecipientID == userID
}
