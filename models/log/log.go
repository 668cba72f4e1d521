package log

import (
	"time"
)

// Log represents a recorded gateway request/response.
type Log struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID    string    `gorm:"type:varchar(64);index" json:"request_id"`
	Service      string    `gorm:"type:varchar(32);not null" json:"service"`
	Method       string    `gorm:"type:varchar(10);not null" json:"method"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	RequestBody  string    `gorm:"type:text" json:"request_body"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	StatusCode   int       `gorm:"type:int" json:"status_code"`
	DurationMs   int64     `json:"duration_ms"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
