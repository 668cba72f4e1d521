package booking

import (
	"strings"
	"time"

	"travel-portal/services/validation"
	"travel-portal/types/payment"
)

const DateLayout = "2006-01-02"

// Booking statuses
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// IsValidStatus reports whether s is one of the booking statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

type Contact struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank"`
	Phone string `json:"phone" validate:"notblank"`
}

// Booking is the booking service's record.
type Booking struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	PackageID    string           `json:"packageId"`
	PackageTitle string           `json:"packageTitle,omitempty"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	Adults       int              `json:"adults"`
	Children     int              `json:"children"`
	Infants      int              `json:"infants"`
	Contact      Contact          `json:"contact"`
	Travelers    []string         `json:"travelers"`
	HasInsurance bool             `json:"hasInsurance"`
	TotalAmount  float64          `json:"totalAmount"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"createdAt,omitempty"`
	Payment      *payment.Payment `json:"payment,omitempty"`
}

// StartsAt parses the start date; the zero time when unparseable.
func (b Booking) StartsAt() time.Time {
	t, _ := time.Parse(DateLayout, b.StartDate)
	return t
}

// CreatedTime parses CreatedAt as RFC 3339 or a plain date.
func (b Booking) CreatedTime() time.Time {
	if t, err := time.Parse(time.RFC3339, b.CreatedAt); err == nil {
		return t
	}
	t, _ := time.Parse(DateLayout, b.CreatedAt)
	return t
}

// CreateForm is the booking form submitted at the start of the funnel.
type CreateForm struct {
	PackageID     string   `json:"packageId" validate:"notblank"`
	StartDate     string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	Adults        int      `json:"adults" validate:"min=1"`
	Children      int      `json:"children" validate:"min=0"`
	Infants       int      `json:"infants" validate:"min=0"`
	Contact       Contact  `json:"contact"`
	Travelers     []string `json:"travelers" validate:"dive,notblank"`
	HasInsurance  bool     `json:"hasInsurance"`
	TermsAccepted bool     `json:"termsAccepted"`
}

const TermsMessage = "You must accept the terms and conditions."

// Validate checks the form. It never touches the network.
func (f *CreateForm) Validate() error {
	f.Contact.Name = strings.TrimSpace(f.Contact.Name)
	f.Contact.Email = strings.TrimSpace(f.Contact.Email)
	f.Contact.Phone = strings.TrimSpace(f.Contact.Phone)

	errs := validation.Struct(f)
	if f.Adults < 1 {
		errs["adults"] = "At least one adult is required."
	}
	if !f.TermsAccepted {
		errs["termsAccepted"] = TermsMessage
	}
	if _, bad := errs["startDate"]; !bad {
		if _, bad := errs["endDate"]; !bad && f.EndDate < f.StartDate {
			errs["endDate"] = "End Date must not be before Start Date."
		}
	}
	return errs.OrNil()
}

// Ready reports whether the form may be submitted.
func (f CreateForm) Ready() bool {
	return f.Validate() == nil
}

// ToBooking builds the PENDING record sent to the booking service.
func (f CreateForm) ToBooking(userID string, total float64) Booking {
	travelers := make([]string, 0, len(f.Travelers))
	for _, t := range f.Travelers {
		travelers = append(travelers, strings.TrimSpace(t))
	}
	return Booking{
		UserID:       userID,
		PackageID:    f.PackageID,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Adults:       f.Adults,
		Children:     f.Children,
		Infants:      f.Infants,
		Contact:      f.Contact,
		Travelers:    travelers,
		HasInsurance: f.HasInsurance,
		TotalAmount:  total,
		Status:       StatusPending,
	}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

func (r *StatusRequest) Validate() error {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	return validation.Struct(r).OrNil()
}
