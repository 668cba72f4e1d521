package funnel

import (
	"context"
	"encoding/json"
	"fmt"

	draftModel "travel-portal/models/draft"
	"travel-portal/types/booking"
	"travel-portal/utils"
)

// Draft is a partially filled booking form.
type Draft struct {
	booking.CreateForm
	GuestCount int `json:"guestCount"`
}

// Drafts keeps the booking form a user has not submitted yet. There is
// no versioning; the last save wins.
type Drafts struct {
	store  DraftStore
	cipher *utils.Cipher
}

// NewDrafts stores payloads encrypted when cipher is non-nil.
func NewDrafts(store DraftStore, cipher *utils.Cipher) *Drafts {
	return &Drafts{store: store, cipher: cipher}
}

func (d *Drafts) Save(ctx context.Context, userID string, draft Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	row := &draftModel.BookingDraft{UserID: userID, Payload: string(raw)}
	if d.cipher != nil {
		sealed, err := d.cipher.Encrypt(string(raw))
		if err != nil {
			return err
		}
		row.Payload = sealed
		row.Encrypted = true
	}
	return d.store.PutDraft(ctx, row)
}

// Load returns nil when the user has no draft.
func (d *Drafts) Load(ctx context.Context, userID string) (*Draft, error) {
	row, err := d.store.GetDraft(ctx, userID)
	if err != nil || row == nil {
		return nil, err
	}

	payload := row.Payload
	if row.Encrypted {
		if d.cipher == nil {
			return nil, fmt.Errorf("draft for user %s is encrypted but no key is configured", userID)
		}
		if payload, err = d.cipher.Decrypt(payload); err != nil {
			return nil, err
		}
	}

	var draft Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

func (d *Drafts) Clear(ctx context.Context, userID string) error {
	return d.store.DeleteDraft(ctx, userID)
}
