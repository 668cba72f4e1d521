package assistance

import "strings"

// Ticket statuses
const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
)

const DescriptionRequired = "Issue Description is required."

// Request is a customer support ticket.
type Request struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	IssueDescription  string `json:"issueDescription"`
	Status            string `json:"status"`
	ResolutionMessage string `json:"resolutionMessage,omitempty"`
	ResolutionTime    string `json:"resolutionTime,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`
}

type CreateForm struct {
	IssueDescription string `json:"issueDescription"`
}

// Validate trims the description and rejects an empty one.
func (f *CreateForm) Validate() map[string]string {
	f.IssueDescription = strings.TrimSpace(f.IssueDescription)
	if f.IssueDescription == "" {
		return map[string]string{"issueDescription": DescriptionRequired}
	}
	return nil
}

type ResolveForm struct {
	ResolutionMessage string `json:"resolutionMessage"`
}

type StatusForm struct {
	Status string `json:"status"`
}

// NormalizeStatus maps any casing of a ticket status to its canonical form.
func NormalizeStatus(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "resolved":
		return StatusResolved, true
	default:
		return "", false
	}
}
