package review

import (
	"strings"

	"travel-portal/services/validation"
)

type Review struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName,omitempty"`
	PackageID     string `json:"packageId"`
	BookingID     string `json:"bookingId,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	AgentResponse string `json:"agentResponse,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

type CreateForm struct {
	PackageID string `json:"packageId" validate:"notblank"`
	BookingID string `json:"bookingId" validate:"notblank"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment" validate:"notblank,max=2000"`
}

func (f *CreateForm) Validate() error {
	f.Comment = strings.TrimSpace(f.Comment)
	return validation.Struct(f).OrNil()
}

type RespondForm struct {
	Response string `json:"response" validate:"notblank,max=2000"`
}

func (f *RespondForm) Validate() error {
	f.Response = strings.TrimSpace(f.Response)
	return validation.Struct(f).OrNil()
}
