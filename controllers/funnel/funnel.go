package funnel

import (
	"context"
	"fmt"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	funnelModel "travel-portal/models/funnel"
	funnelService "travel-portal/services/funnel"
	"travel-portal/types"
	"travel-portal/types/booking"
	"travel-portal/types/insurance"
	"travel-portal/types/payment"

	"github.com/gofiber/fiber/v2"
)

// Funnel moves a booking through its stages.
type Funnel interface {
	StartBooking(ctx context.Context, p types.Principal, form booking.CreateForm) (*funnelService.Step, error)
	Session(ctx context.Context, p types.Principal, id string) (*funnelModel.Session, error)
	History(ctx context.Context, p types.Principal, id string) ([]funnelModel.StageEvent, error)
	SelectInsurance(ctx context.Context, p types.Principal, sessionID, planID string) (*funnelService.Step, error)
	SkipInsurance(ctx context.Context, p types.Principal, sessionID string) (*funnelService.Step, error)
	CreateOrder(ctx context.Context, p types.Principal, sessionID string, form payment.OrderForm) (*payment.Order, error)
	VerifyPayment(ctx context.Context, p types.Principal, sessionID string, v payment.Verification) (*funnelService.Step, error)
}

// Drafts stores unfinished booking forms.
type Drafts interface {
	Save(ctx context.Context, userID string, draft funnelService.Draft) error
	Load(ctx context.Context, userID string) (*funnelService.Draft, error)
	Clear(ctx context.Context, userID string) error
}

type FunnelController struct {
	funnel Funnel
	drafts Drafts
}

func NewFunnelController(f Funnel, drafts Drafts) *FunnelController {
	return &FunnelController{funnel: f, drafts: drafts}
}

/*=============================================================================
| Booking form
===============================================================================*/

// CreateBooking submits the booking form and opens the funnel.
func (fc *FunnelController) CreateBooking(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form booking.CreateForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}

	step, err := fc.funnel.StartBooking(c.UserContext(), p, form)
	if err != nil {
		return server.Fail(c, err, "Failed to create booking")
	}

	logger.Info(fmt.Sprintf("Booking %s created for user %s, next step %s", step.BookingID, p.UserID, step.Next))
	return server.Respond(c, fiber.StatusCreated, "Booking created successfully", step)
}

func (fc *FunnelController) Session(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	session, err := fc.funnel.Session(c.UserContext(), p, c.Params("sessionId"))
	if err != nil {
		return server.Fail(c, err, "Failed to load booking session")
	}
	return server.Respond(c, fiber.StatusOK, "Booking session retrieved successfully", session)
}

// History lists the stage transitions of a session, oldest first.
func (fc *FunnelController) History(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	events, err := fc.funnel.History(c.UserContext(), p, c.Params("sessionId"))
	if err != nil {
		return server.Fail(c, err, "Failed to load booking history")
	}
	if events == nil {
		events = []funnelModel.StageEvent{}
	}
	return server.Respond(c, fiber.StatusOK, "Booking history retrieved successfully", events)
}

/*=============================================================================
| Drafts
===============================================================================*/

func (fc *FunnelController) GetDraft(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	draft, err := fc.drafts.Load(c.UserContext(), p.UserID)
	if err != nil {
		return server.Fail(c, err, "Failed to load booking draft")
	}
	if draft == nil {
		return server.Respond(c, fiber.StatusOK, "No booking draft", fiber.Map{"draft": nil, "ready": false})
	}
	return server.Respond(c, fiber.StatusOK, "Booking draft retrieved successfully", fiber.Map{
		"draft": draft,
		"ready": draft.CreateForm.Ready(),
	})
}

func (fc *FunnelController) SaveDraft(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var draft funnelService.Draft
	if err := c.BodyParser(&draft); err != nil {
		return server.BadRequest(c, err)
	}

	if err := fc.drafts.Save(c.UserContext(), p.UserID, draft); err != nil {
		return server.Fail(c, err, "Failed to save booking draft")
	}
	return server.Respond(c, fiber.StatusOK, "Booking draft saved", fiber.Map{
		"draft": draft,
		"ready": draft.CreateForm.Ready(),
	})
}

func (fc *FunnelController) DeleteDraft(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	if err := fc.drafts.Clear(c.UserContext(), p.UserID); err != nil {
		return server.Fail(c, err, "Failed to delete booking draft")
	}
	return server.Respond(c, fiber.StatusOK, "Booking draft deleted", nil)
}

/*=============================================================================
| Insurance step
===============================================================================*/

func (fc *FunnelController) SelectInsurance(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form insurance.SelectForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	if form.PlanID == "" {
		return server.Invalid(c, map[string]string{"planId": "Please select an insurance plan."})
	}

	step, err := fc.funnel.SelectInsurance(c.UserContext(), p, c.Params("sessionId"), form.PlanID)
	if err != nil {
		return server.Fail(c, err, "Failed to select insurance")
	}
	return server.Respond(c, fiber.StatusOK, "Insurance selected successfully", step)
}

func (fc *FunnelController) SkipInsurance(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	step, err := fc.funnel.SkipInsurance(c.UserContext(), p, c.Params("sessionId"))
	if err != nil {
		return server.Fail(c, err, "Failed to skip insurance")
	}
	return server.Respond(c, fiber.StatusOK, "Insurance skipped", step)
}
