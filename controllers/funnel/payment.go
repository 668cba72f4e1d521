package funnel

import (
	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/types/payment"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder opens the payment order the checkout widget is started with.
func (fc *FunnelController) CreateOrder(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form payment.OrderForm
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&form); err != nil {
			return server.BadRequest(c, err)
		}
	}

	order, err := fc.funnel.CreateOrder(c.UserContext(), p, c.Params("sessionId"), form)
	if err != nil {
		return server.Fail(c, err, "Failed to create payment order")
	}
	return server.Respond(c, fiber.StatusCreated, "Payment order created", order)
}

// VerifyPayment checks the checkout callback. A failed verification
// leaves the booking at the payment step.
func (fc *FunnelController) VerifyPayment(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var v payment.Verification
	if err := c.BodyParser(&v); err != nil {
		return server.BadRequest(c, err)
	}

	step, err := fc.funnel.VerifyPayment(c.UserContext(), p, c.Params("sessionId"), v)
	if err != nil {
		logger.Warning("Payment verification failed for session " + c.Params("sessionId") + ": " + err.Error())
		return server.Fail(c, err, "Failed to verify payment")
	}
	return server.Respond(c, fiber.StatusOK, "Payment verified successfully", fiber.Map{
		"bookingId": step.BookingID,
		"sessionId": step.SessionID,
		"next":      step.Next,
	})
}
