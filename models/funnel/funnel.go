package funnel

import (
	"time"
)

// Session carries a booking through insurance and payment. It replaces
// the navigation state the pages used to pass to each other.
type Session struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"sessionId"`
	UserID          string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	PackageID       string    `gorm:"type:varchar(64);not null" json:"packageId"`
	BookingID       string    `gorm:"type:varchar(64);not null;index" json:"bookingId"`
	TotalAmount     float64   `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	HasInsurance    bool      `gorm:"default:false" json:"hasInsurance"`
	InsurancePlanID string    `gorm:"type:varchar(64)" json:"insurancePlanId,omitempty"`
	InsuranceAmount float64   `gorm:"type:decimal(12,2);default:0" json:"insuranceAmount,omitempty"`
	OrderID         string    `gorm:"type:varchar(128);index" json:"orderId,omitempty"`
	PaymentMethod   string    `gorm:"type:varchar(32)" json:"paymentMethod,omitempty"`
	Stage           Stage     `gorm:"type:varchar(20);not null;index" json:"stage"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the Session model
func (Session) TableName() string {
	return "funnel_sessions"
}
