package dashboard

import (
	"math"
	"sort"
	"time"

	"travel-portal/types/assistance"
	"travel-portal/types/booking"
	"travel-portal/types/review"
	"travel-portal/types/travelpackage"
	"travel-portal/types/user"

	"github.com/jinzhu/now"
)

type UserSummary struct {
	Bookings       []booking.Booking `json:"bookings"`
	CountsByStatus map[string]int    `json:"countsByStatus"`
	Upcoming       []booking.Booking `json:"upcoming"`
	TotalSpent     float64           `json:"totalSpent"`
	WishlistSize   int64             `json:"wishlistSize"`
	OpenTickets    int               `json:"openTickets"`
}

type AdminSummary struct {
	Users             int            `json:"users"`
	UsersByRole       map[string]int `json:"usersByRole"`
	Packages          int            `json:"packages"`
	Bookings          int            `json:"bookings"`
	BookingsThisMonth int            `json:"bookingsThisMonth"`
	Reviews           int            `json:"reviews"`
	Revenue           float64        `json:"revenue"`
	PendingTickets    int            `json:"pendingTickets"`
}

type AgentSummary struct {
	ActivePackages    int            `json:"activePackages"`
	InactivePackages  int            `json:"inactivePackages"`
	BookingsByStatus  map[string]int `json:"bookingsByStatus"`
	AverageRating     float64        `json:"averageRating"`
	UnansweredReviews int            `json:"unansweredReviews"`
}

// paid reports whether a booking counts towards spend and revenue.
func paid(b booking.Booking) bool {
	return b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted
}

func countByStatus(bookings []booking.Booking) map[string]int {
	counts := map[string]int{
		booking.StatusPending:   0,
		booking.StatusConfirmed: 0,
		booking.StatusCancelled: 0,
		booking.StatusCompleted: 0,
	}
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}

func pendingTickets(tickets []assistance.Request) int {
	n := 0
	for _, t := range tickets {
		if status, _ := assistance.NormalizeStatus(t.Status); status != assistance.StatusResolved {
			n++
		}
	}
	return n
}

// SummarizeUser builds a traveler's dashboard. Upcoming trips start today
// or later and are not cancelled, soonest first.
func SummarizeUser(bookings []booking.Booking, tickets []assistance.Request, wishlistSize int64, at time.Time) UserSummary {
	today := now.With(at).BeginningOfDay()

	s := UserSummary{
		Bookings:       bookings,
		CountsByStatus: countByStatus(bookings),
		Upcoming:       []booking.Booking{},
		WishlistSize:   wishlistSize,
		OpenTickets:    pendingTickets(tickets),
	}
	if s.Bookings == nil {
		s.Bookings = []booking.Booking{}
	}

	for _, b := range bookings {
		if paid(b) {
			s.TotalSpent += b.TotalAmount
		}
		if b.Status != booking.StatusCancelled && !b.StartsAt().Before(today) {
			s.Upcoming = append(s.Upcoming, b)
		}
	}
	sort.SliceStable(s.Upcoming, func(i, j int) bool {
		return s.Upcoming[i].StartsAt().Before(s.Upcoming[j].StartsAt())
	})
	s.TotalSpent = round2(s.TotalSpent)
	return s
}

// SummarizeAdmin builds the platform overview.
func SummarizeAdmin(users []user.User, packages []travelpackage.Package, bookings []booking.Booking, reviews []review.Review, tickets []assistance.Request, at time.Time) AdminSummary {
	month := now.With(at)
	start, end := month.BeginningOfMonth(), month.EndOfMonth()

	s := AdminSummary{
		Users:          len(users),
		UsersByRole:    map[string]int{},
		Packages:       len(packages),
		Bookings:       len(bookings),
		Reviews:        len(reviews),
		PendingTickets: pendingTickets(tickets),
	}
	for _, u := range users {
		s.UsersByRole[u.Role]++
	}
	for _, b := range bookings {
		if paid(b) {
			s.Revenue += b.TotalAmount
		}
		created := b.CreatedTime()
		if !created.IsZero() && !created.Before(start) && !created.After(end) {
			s.BookingsThisMonth++
		}
	}
	s.Revenue = round2(s.Revenue)
	return s
}

// SummarizeAgent builds the travel agent's overview.
func SummarizeAgent(packages []travelpackage.Package, bookings []booking.Booking, reviews []review.Review) AgentSummary {
	s := AgentSummary{BookingsByStatus: countByStatus(bookings)}
	for _, p := range packages {
		if p.Active {
			s.ActivePackages++
		} else {
			s.InactivePackages++
		}
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
		if r.AgentResponse == "" {
			s.UnansweredReviews++
		}
	}
	if len(reviews) > 0 {
		s.AverageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
