package insurance

// Plan is an insurance tier offered before payment.
type Plan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Coverage string  `json:"coverage,omitempty"`
}

// Selection ties a plan to a booking.
type Selection struct {
	ID        string  `json:"id"`
	PlanID    string  `json:"planId"`
	PlanName  string  `json:"planName,omitempty"`
	Price     float64 `json:"price"`
	BookingID string  `json:"bookingId"`
	UserID    string  `json:"userId"`
}

type SelectForm struct {
	PlanID string `json:"planId" validate:"notblank"`
}

// FallbackPlans is served when the insurance service cannot be reached.
func FallbackPlans() []Plan {
	return []Plan{
		{ID: "small", Name: "Small", Price: 599, Coverage: "Basic medical and trip cancellation cover"},
		{ID: "medium", Name: "Medium", Price: 899, Coverage: "Medical, cancellation and baggage cover"},
		{ID: "large", Name: "Large", Price: 1000, Coverage: "Comprehensive cover including emergency evacuation"},
	}
}

// FindPlan returns the plan with the given id or name.
func FindPlan(plans []Plan, idOrName string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == idOrName || p.Name == idOrName {
			return p, true
		}
	}
	return Plan{}, false
}
