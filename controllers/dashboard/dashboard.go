package dashboard

import (
	"context"
	"time"

	"travel-portal/controllers/server"
	"travel-portal/middleware"
	dashboardService "travel-portal/services/dashboard"
	"travel-portal/types/assistance"
	"travel-portal/types/booking"
	"travel-portal/types/review"
	"travel-portal/types/travelpackage"
	"travel-portal/types/user"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Gateway is every backend service a dashboard reads from.
type Gateway interface {
	ListUsers(ctx context.Context, token string) ([]user.User, error)
	ListPackages(ctx context.Context, token string) ([]travelpackage.Package, error)
	ListBookings(ctx context.Context, token string) ([]booking.Booking, error)
	ListUserBookings(ctx context.Context, token, userID string) ([]booking.Booking, error)
	ListReviews(ctx context.Context, token, packageID string) ([]review.Review, error)
	ListTickets(ctx context.Context, token string) ([]assistance.Request, error)
	ListUserTickets(ctx context.Context, token, userID string) ([]assistance.Request, error)
}

type WishlistCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

// TicketSnapshot is the refresher's copy of the assistance queue.
type TicketSnapshot interface {
	Snapshot() ([]assistance.Request, bool)
}

type DashboardController struct {
	gw       Gateway
	wishlist WishlistCounter
	tickets  TicketSnapshot
	now      func() time.Time
}

// NewDashboardController accepts a nil snapshot.
func NewDashboardController(gw Gateway, wishlist WishlistCounter, tickets TicketSnapshot) *DashboardController {
	return &DashboardController{gw: gw, wishlist: wishlist, tickets: tickets, now: time.Now}
}

func (dc *DashboardController) User(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var (
		bookings []booking.Booking
		tickets  []assistance.Request
		saved    int64
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		bookings, err = dc.gw.ListUserBookings(ctx, p.Token, p.UserID)
		return err
	})
	g.Go(func() (err error) {
		tickets, err = dc.gw.ListUserTickets(ctx, p.Token, p.UserID)
		return err
	})
	g.Go(func() (err error) {
		saved, err = dc.wishlist.Count(ctx, p.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return server.Fail(c, err, "Failed to load dashboard")
	}

	return server.Respond(c, fiber.StatusOK, "Dashboard retrieved successfully",
		dashboardService.SummarizeUser(bookings, tickets, saved, dc.now()))
}

func (dc *DashboardController) Admin(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var (
		users    []user.User
		packages []travelpackage.Package
		bookings []booking.Booking
		reviews  []review.Review
		tickets  []assistance.Request
	)
	fresh := false
	if dc.tickets != nil {
		tickets, fresh = dc.tickets.Snapshot()
	}

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		users, err = dc.gw.ListUsers(ctx, p.Token)
		return err
	})
	g.Go(func() (err error) {
		packages, err = dc.gw.ListPackages(ctx, p.Token)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = dc.gw.ListBookings(ctx, p.Token)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = dc.gw.ListReviews(ctx, p.Token, "")
		return err
	})
	if !fresh {
		g.Go(func() (err error) {
			tickets, err = dc.gw.ListTickets(ctx, p.Token)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return server.Fail(c, err, "Failed to load dashboard")
	}

	return server.Respond(c, fiber.StatusOK, "Dashboard retrieved successfully",
		dashboardService.SummarizeAdmin(users, packages, bookings, reviews, tickets, dc.now()))
}

// Agent summarizes the whole catalog; agents manage every package.
func (dc *DashboardController) Agent(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var (
		packages []travelpackage.Package
		bookings []booking.Booking
		reviews  []review.Review
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		packages, err = dc.gw.ListPackages(ctx, p.Token)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = dc.gw.ListBookings(ctx, p.Token)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = dc.gw.ListReviews(ctx, p.Token, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return server.Fail(c, err, "Failed to load dashboard")
	}

	return server.Respond(c, fiber.StatusOK, "Dashboard retrieved successfully",
		dashboardService.SummarizeAgent(packages, bookings, reviews))
}
