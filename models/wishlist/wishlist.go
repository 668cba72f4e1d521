package wishlist

import (
	"time"
)

// Item is one saved package on a user's wishlist.
type Item struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_user_package" json:"userId"`
	PackageID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_user_package" json:"packageId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName sets the table name for the Item model
func (Item) TableName() string {
	return "wishlist_items"
}
