package booking

import (
	"context"
	"fmt"
	"strings"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services/tables"
	bookingTypes "travel-portal/types/booking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// BookingGateway is the booking service.
type BookingGateway interface {
	GetBooking(ctx context.Context, token, id string) (*bookingTypes.Booking, error)
	ListUserBookings(ctx context.Context, token, userID string) ([]bookingTypes.Booking, error)
	ListBookings(ctx context.Context, token string) ([]bookingTypes.Booking, error)
	UpdateBookingStatus(ctx context.Context, token, id, status string) (*bookingTypes.Booking, error)
	CancelBooking(ctx context.Context, token, id string) (*bookingTypes.Booking, error)
}

// BookingController handles booking records once the funnel has created them
type BookingController struct {
	gw BookingGateway
}

// NewBookingController creates a new booking controller
func NewBookingController(gw BookingGateway) *BookingController {
	return &BookingController{gw: gw}
}

// Mine lists the caller's own bookings
func (bc *BookingController) Mine(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	list, err := bc.gw.ListUserBookings(c.UserContext(), p.Token, p.UserID)
	if err != nil {
		return server.Fail(c, err, "Failed to list bookings")
	}
	return server.Respond(c, fiber.StatusOK, "Bookings retrieved successfully", tables.Bookings.Apply(list, c.Queries()))
}

// Cancel cancels a booking owned by the caller. Cancelled and completed
// bookings cannot be cancelled again.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	id := utils.CopyString(c.Params("id"))

	b, err := bc.gw.GetBooking(c.UserContext(), p.Token, id)
	if err != nil {
		return server.Fail(c, err, "Failed to load booking")
	}
	if b.UserID != p.UserID {
		return server.Forbidden(c)
	}
	if b.Status == bookingTypes.StatusCancelled || b.Status == bookingTypes.StatusCompleted {
		return server.Respond(c, fiber.StatusConflict, fmt.Sprintf("A %s booking cannot be cancelled", capitalize(b.Status)), nil)
	}

	cancelled, err := bc.gw.CancelBooking(c.UserContext(), p.Token, id)
	if err != nil {
		return server.Fail(c, err, "Failed to cancel booking")
	}
	logger.Info(fmt.Sprintf("Booking %s cancelled by %s", id, p.UserID))
	return server.Respond(c, fiber.StatusOK, "Booking cancelled successfully", cancelled)
}

/*=============================================================================
| Staff
===============================================================================*/

// Table is the admin and agent booking table
func (bc *BookingController) Table(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	list, err := bc.gw.ListBookings(c.UserContext(), p.Token)
	if err != nil {
		return server.Fail(c, err, "Failed to list bookings")
	}
	return server.Respond(c, fiber.StatusOK, "Bookings retrieved successfully", tables.Bookings.Apply(list, c.Queries()))
}

// UpdateStatus moves a booking to any of the allowed statuses
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	id := utils.CopyString(c.Params("id"))

	var req bookingTypes.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return server.Fail(c, err, "Invalid status")
	}

	updated, err := bc.gw.UpdateBookingStatus(c.UserContext(), p.Token, id, req.Status)
	if err != nil {
		return server.Fail(c, err, "Failed to update booking status")
	}
	logger.Success(fmt.Sprintf("Booking %s moved to %s by %s", id, req.Status, p.UserID))
	return server.Respond(c, fiber.StatusOK, "Booking status updated successfully", updated)
}

func capitalize(status string) string {
	if status == "" {
		return status
	}
	return status[:1] + strings.ToLower(status[1:])
}
