package funnel

import (
	"time"
)

// StageEvent records a session entering a stage. From is empty for the
// event written when the session is created.
type StageEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"type:varchar(36);not null;index" json:"sessionId"`
	BookingID string    `gorm:"type:varchar(64);not null;index" json:"bookingId"`
	From      Stage     `gorm:"column:from_stage;type:varchar(20)" json:"from,omitempty"`
	To        Stage     `gorm:"column:to_stage;type:varchar(20);not null" json:"to"`
	CreatedBy string    `gorm:"type:varchar(64);not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName sets the table name for the StageEvent model
func (StageEvent) TableName() string {
	return "funnel_stage_events"
}

// EventFor builds the event for s having moved from from to its current stage.
func EventFor(s *Session, from Stage) StageEvent {
	return StageEvent{
		SessionID: s.ID,
		BookingID: s.BookingID,
		From:      from,
		To:        s.Stage,
		CreatedBy: s.UserID,
	}
}
