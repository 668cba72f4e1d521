package draft

import (
	"time"
)

// BookingDraft holds a user's unfinished booking form. One row per user.
type BookingDraft struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"userId"`
	Payload   string    `gorm:"type:text;not null" json:"-"`
	Encrypted bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the BookingDraft model
func (BookingDraft) TableName() string {
	return "booking_drafts"
}
