package funnel

import (
	"context"
	"errors"

	draftModel "travel-portal/models/draft"
	funnelModel "travel-portal/models/funnel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSessionNotFound = errors.New("funnel session not found")
	// ErrStageConflict means another request moved the session first.
	ErrStageConflict = errors.New("funnel session was updated by another request")
)

// Store persists funnel sessions.
type Store interface {
	CreateSession(ctx context.Context, s *funnelModel.Session) error
	GetSession(ctx context.Context, id string) (*funnelModel.Session, error)
	// SaveSession writes s only if its stored stage is still from.
	SaveSession(ctx context.Context, s *funnelModel.Session, from funnelModel.Stage) error
	// ListEvents returns a session's stage history, oldest first.
	ListEvents(ctx context.Context, sessionID string) ([]funnelModel.StageEvent, error)
}

// DraftStore persists one booking draft per user.
type DraftStore interface {
	GetDraft(ctx context.Context, userID string) (*draftModel.BookingDraft, error)
	PutDraft(ctx context.Context, d *draftModel.BookingDraft) error
	DeleteDraft(ctx context.Context, userID string) error
}

// GormStore implements Store and DraftStore on Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) CreateSession(ctx context.Context, s *funnelModel.Session) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		event := funnelModel.EventFor(s, "")
		return tx.Create(&event).Error
	})
}

func (g *GormStore) GetSession(ctx context.Context, id string) (*funnelModel.Session, error) {
	var s funnelModel.Session
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession applies the update and, when the stage moved, its event in
// one transaction.
func (g *GormStore) SaveSession(ctx context.Context, s *funnelModel.Session, from funnelModel.Stage) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&funnelModel.Session{}).
			Where("id = ? AND stage = ?", s.ID, from).
			Updates(map[string]interface{}{
				"total_amount":      s.TotalAmount,
				"insurance_plan_id": s.InsurancePlanID,
				"insurance_amount":  s.InsuranceAmount,
				"order_id":          s.OrderID,
				"payment_method":    s.PaymentMethod,
				"stage":             s.Stage,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStageConflict
		}
		if s.Stage == from {
			return nil
		}
		event := funnelModel.EventFor(s, from)
		return tx.Create(&event).Error
	})
}

func (g *GormStore) ListEvents(ctx context.Context, sessionID string) ([]funnelModel.StageEvent, error) {
	events := []funnelModel.StageEvent{}
	err := g.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (g *GormStore) GetDraft(ctx context.Context, userID string) (*draftModel.BookingDraft, error) {
	var d draftModel.BookingDraft
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (g *GormStore) PutDraft(ctx context.Context, d *draftModel.BookingDraft) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "encrypted", "updated_at"}),
	}).Create(d).Error
}

func (g *GormStore) DeleteDraft(ctx context.Context, userID string) error {
	return g.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&draftModel.BookingDraft{}).Error
}
