package wishlist

import (
	"context"

	wishlistModel "travel-portal/models/wishlist"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store keeps each user's saved package ids.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns the user's package ids, oldest first.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&wishlistModel.Item{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("package_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add is idempotent.
func (s *Store) Add(ctx context.Context, userID, packageID string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&wishlistModel.Item{UserID: userID, PackageID: packageID}).Error
}

func (s *Store) Remove(ctx context.Context, userID, packageID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND package_id = ?", userID, packageID).
		Delete(&wishlistModel.Item{}).Error
}

func (s *Store) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&wishlistModel.Item{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
