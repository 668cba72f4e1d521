package travelpackage

import (
	"fmt"
	"strings"

	"travel-portal/services/validation"
)

type Flight struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

type Hotel struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Nights int     `json:"nights"`
	Rating float64 `json:"rating"`
}

type Sightseeing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Package is a sellable itinerary bundle.
type Package struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Destination      string        `json:"destination"`
	Duration         int           `json:"duration"`
	Price            float64       `json:"price"`
	IncludedServices []string      `json:"includedServices"`
	ExcludedServices []string      `json:"excludedServices"`
	Images           []string      `json:"images"`
	Active           bool          `json:"active"`
	AgentID          string        `json:"agentId,omitempty"`
	Flights          []Flight      `json:"flights,omitempty"`
	Hotels           []Hotel       `json:"hotels,omitempty"`
	Sightseeing      []Sightseeing `json:"sightseeing,omitempty"`
}

// UpsertRequest is the agent's create/edit form.
type UpsertRequest struct {
	Title            string        `json:"title" validate:"notblank,max=200"`
	Description      string        `json:"description" validate:"notblank"`
	Destination      string        `json:"destination" validate:"notblank,max=120"`
	Duration         int           `json:"duration" validate:"min=1"`
	Price            float64       `json:"price"`
	IncludedServices []string      `json:"includedServices"`
	ExcludedServices []string      `json:"excludedServices"`
	Images           []string      `json:"images"`
	Active           bool          `json:"active"`
	Flights          []Flight      `json:"flights,omitempty"`
	Hotels           []Hotel       `json:"hotels,omitempty"`
	Sightseeing      []Sightseeing `json:"sightseeing,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Destination = strings.TrimSpace(r.Destination)
	errs := validation.Struct(r)
	if r.Price <= 0 {
		errs.Add("price", "Price must be greater than 0.")
	}
	return errs.OrNil()
}

// ToPackage builds the record sent to the package service.
func (r UpsertRequest) ToPackage(id, agentID string) Package {
	return Package{
		ID:               id,
		Title:            r.Title,
		Description:      r.Description,
		Destination:      r.Destination,
		Duration:         r.Duration,
		Price:            r.Price,
		IncludedServices: r.IncludedServices,
		ExcludedServices: r.ExcludedServices,
		Images:           r.Images,
		Active:           r.Active,
		AgentID:          agentID,
		Flights:          r.Flights,
		Hotels:           r.Hotels,
		Sightseeing:      r.Sightseeing,
	}
}

// SearchQuery filters the catalog by destination and price band.
type SearchQuery struct {
	Destination string  `query:"destination"`
	MinPrice    float64 `query:"minPrice"`
	MaxPrice    float64 `query:"maxPrice"`
}

func (q SearchQuery) Validate() error {
	if q.MinPrice < 0 || q.MaxPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return fmt.Errorf("minPrice must not exceed maxPrice")
	}
	return nil
}

// Matches applies the query locally, used for the fallback catalog.
func (q SearchQuery) Matches(p Package) bool {
	if q.Destination != "" && !strings.Contains(strings.ToLower(p.Destination), strings.ToLower(q.Destination)) {
		return false
	}
	if q.MinPrice > 0 && p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}
	return true
}

type StatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// FallbackCatalog is shown when the package service cannot be reached.
func FallbackCatalog() []Package {
	return []Package{
		{
			ID:               "fallback-goa",
			Title:            "Goa Beach Escape",
			Description:      "Four nights by the sea with airport transfers and a sunset cruise.",
			Destination:      "Goa",
			Duration:         5,
			Price:            1500,
			IncludedServices: []string{"Hotel", "Breakfast", "Airport transfers"},
			ExcludedServices: []string{"Flights"},
			Active:           true,
		},
		{
			ID:               "fallback-kerala",
			Title:            "Kerala Backwaters",
			Description:      "Houseboat stay on the backwaters with a Munnar tea estate visit.",
			Destination:      "Kerala",
			Duration:         6,
			Price:            2200,
			IncludedServices: []string{"Houseboat", "All meals", "Guided tours"},
			ExcludedServices: []string{"Flights", "Travel insurance"},
			Active:           true,
		},
		{
			ID:               "fallback-jaipur",
			Title:            "Jaipur Heritage Trail",
			Description:      "Forts, palaces and bazaars of the Pink City.",
			Destination:      "Jaipur",
			Duration:         3,
			Price:            950,
			IncludedServices: []string{"Hotel", "Breakfast", "Sightseeing"},
			ExcludedServices: []string{"Flights", "Lunch and dinner"},
			Active:           true,
		},
	}
}
