package confirmation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services"
	"travel-portal/services/receipt"
	"travel-portal/services/validation"
	"travel-portal/types/booking"

	"github.com/gofiber/fiber/v2"
)

// BookingReader loads a finalized booking.
type BookingReader interface {
	GetBooking(ctx context.Context, token, id string) (*booking.Booking, error)
}

type emailRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type ConfirmationController struct {
	bookings BookingReader
	now      func() time.Time
}

func NewConfirmationController(bookings BookingReader) *ConfirmationController {
	return &ConfirmationController{bookings: bookings, now: time.Now}
}

// load returns the booking when the caller owns it or is staff. The
// response has been written when ok is false.
func (cc *ConfirmationController) load(c *fiber.Ctx) (*booking.Booking, bool, error) {
	p, _ := middleware.GetPrincipal(c)

	b, err := cc.bookings.GetBooking(c.UserContext(), p.Token, c.Params("id"))
	if err != nil {
		return nil, false, server.Fail(c, err, "Failed to load booking")
	}
	if !services.CanAccess(p, b.UserID) {
		return nil, false, server.Forbidden(c)
	}
	return b, true, nil
}

func (cc *ConfirmationController) Show(c *fiber.Ctx) error {
	b, ok, err := cc.load(c)
	if !ok {
		return err
	}
	return server.Respond(c, fiber.StatusOK, "Booking retrieved successfully", b)
}

// Receipt downloads the plain-text receipt.
func (cc *ConfirmationController) Receipt(c *fiber.Ctx) error {
	b, ok, err := cc.load(c)
	if !ok {
		return err
	}

	c.Attachment(receipt.FileName(b.ID))
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(receipt.Render(*b, cc.now()))
}

// EmailReceipt pretends to mail the receipt. Nothing is sent; the
// dispatch is only logged.
func (cc *ConfirmationController) EmailReceipt(c *fiber.Ctx) error {
	b, ok, err := cc.load(c)
	if !ok {
		return err
	}

	var req emailRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return server.BadRequest(c, err)
		}
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.Struct(req); len(errs) > 0 {
		return server.Invalid(c, errs)
	}

	to := req.Email
	if to == "" {
		to = b.Contact.Email
	}
	if to == "" {
		p, _ := middleware.GetPrincipal(c)
		to = p.Email
	}
	if to == "" {
		return server.Invalid(c, map[string]string{"email": "Email is required."})
	}

	body := receipt.Render(*b, cc.now())
	logger.Info(fmt.Sprintf("Simulated receipt email for booking %s to %s (%d bytes)", b.ID, to, len(body)))
	return server.Respond(c, fiber.StatusOK, "Receipt sent to "+to, nil)
}
