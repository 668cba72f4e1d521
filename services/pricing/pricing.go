package pricing

import "math"

const (
	// ServiceFeePerTraveler is charged for every adult and child.
	ServiceFeePerTraveler = 25.0
	// InsurancePerTraveler is charged for every adult and child when insurance is chosen.
	// Per traveler, not flat: 1500 with 2 adults and 1 child insured totals
	// 3975 (a flat 50 would give 3875).
	InsurancePerTraveler = 50.0
	// ChildFactor is the share of the adult price a child pays.
	ChildFactor = 0.5
)

// Breakdown is an itemized booking estimate.
type Breakdown struct {
	AdultsAmount   float64 `json:"adultsAmount"`
	ChildrenAmount float64 `json:"childrenAmount"`
	ServiceFee     float64 `json:"serviceFee"`
	Insurance      float64 `json:"insurance"`
	Total          float64 `json:"total"`
}

// Estimate prices a booking the way the booking form always has: adults
// pay full price, children half, infants nothing, plus a per-traveler
// service fee and per-traveler insurance when opted in.
func Estimate(pricePerAdult float64, adults, children int, hasInsurance bool) Breakdown {
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}
	paying := float64(adults + children)

	b := Breakdown{
		AdultsAmount:   pricePerAdult * float64(adults),
		ChildrenAmount: pricePerAdult * ChildFactor * float64(children),
		ServiceFee:     ServiceFeePerTraveler * paying,
	}
	if hasInsurance {
		b.Insurance = InsurancePerTraveler * paying
	}
	b.Total = round2(b.AdultsAmount + b.ChildrenAmount + b.ServiceFee + b.Insurance)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
