package assistance

import (
	"context"
	"fmt"
	"strings"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services"
	"travel-portal/services/tables"
	assistanceTypes "travel-portal/types/assistance"

	"github.com/gofiber/fiber/v2"
)

// TicketGateway is the assistance service.
type TicketGateway interface {
	CreateTicket(ctx context.Context, token, userID, description string) (*assistanceTypes.Request, error)
	GetTicket(ctx context.Context, token, id string) (*assistanceTypes.Request, error)
	ListUserTickets(ctx context.Context, token, userID string) ([]assistanceTypes.Request, error)
	ListTickets(ctx context.Context, token string) ([]assistanceTypes.Request, error)
	UpdateTicketStatus(ctx context.Context, token, id, status string) (*assistanceTypes.Request, error)
	ResolveTicket(ctx context.Context, token, id, message string) (*assistanceTypes.Request, error)
}

// Snapshot is a recently polled copy of the whole queue.
type Snapshot interface {
	Snapshot() ([]assistanceTypes.Request, bool)
	Invalidate()
}

type AssistanceController struct {
	tickets  TicketGateway
	snapshot Snapshot
}

// NewAssistanceController accepts a nil snapshot, in which case the admin
// queue is always fetched live.
func NewAssistanceController(tickets TicketGateway, snapshot Snapshot) *AssistanceController {
	return &AssistanceController{tickets: tickets, snapshot: snapshot}
}

// Create opens a ticket for the caller. An empty description is rejected
// before the assistance service is contacted.
func (ac *AssistanceController) Create(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form assistanceTypes.CreateForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	if errs := form.Validate(); errs != nil {
		return server.Invalid(c, errs)
	}

	ticket, err := ac.tickets.CreateTicket(c.UserContext(), p.Token, p.UserID, form.IssueDescription)
	if err != nil {
		return server.Fail(c, err, "Failed to submit assistance request")
	}
	ac.invalidate()

	logger.Info(fmt.Sprintf("Assistance request %s opened by %s", ticket.ID, p.UserID))
	return server.Respond(c, fiber.StatusCreated, "Assistance request submitted successfully", ticket)
}

func (ac *AssistanceController) Show(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	ticket, err := ac.tickets.GetTicket(c.UserContext(), p.Token, c.Params("id"))
	if err != nil {
		return server.Fail(c, err, "Failed to load assistance request")
	}
	if !services.CanAccess(p, ticket.UserID) {
		return server.Forbidden(c)
	}
	return server.Respond(c, fiber.StatusOK, "Assistance request retrieved successfully", ticket)
}

func (ac *AssistanceController) Mine(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	list, err := ac.tickets.ListUserTickets(c.UserContext(), p.Token, p.UserID)
	if err != nil {
		return server.Fail(c, err, "Failed to list assistance requests")
	}
	if list == nil {
		list = []assistanceTypes.Request{}
	}
	return server.Respond(c, fiber.StatusOK, "Assistance requests retrieved successfully", list)
}

/*=============================================================================
| Staff queue
===============================================================================*/

// Queue is the staff table of every ticket, served from the refresher's
// snapshot while it is fresh.
func (ac *AssistanceController) Queue(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var list []assistanceTypes.Request
	cached := false
	if ac.snapshot != nil {
		list, cached = ac.snapshot.Snapshot()
	}
	if !cached {
		var err error
		list, err = ac.tickets.ListTickets(c.UserContext(), p.Token)
		if err != nil {
			return server.Fail(c, err, "Failed to list assistance requests")
		}
	}

	params := c.Queries()
	if status, ok := params["status"]; ok {
		if canonical, valid := assistanceTypes.NormalizeStatus(status); valid {
			params["status"] = canonical
		}
	}
	c.Set("X-From-Cache", fmt.Sprintf("%t", cached))
	return server.Respond(c, fiber.StatusOK, "Assistance requests retrieved successfully", tables.Tickets.Apply(list, params))
}

func (ac *AssistanceController) Resolve(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form assistanceTypes.ResolveForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	form.ResolutionMessage = strings.TrimSpace(form.ResolutionMessage)
	if form.ResolutionMessage == "" {
		return server.Invalid(c, map[string]string{"resolutionMessage": "Resolution Message is required."})
	}

	ticket, err := ac.tickets.ResolveTicket(c.UserContext(), p.Token, c.Params("id"), form.ResolutionMessage)
	if err != nil {
		return server.Fail(c, err, "Failed to resolve assistance request")
	}
	ac.invalidate()

	logger.Success(fmt.Sprintf("Assistance request %s resolved by %s", c.Params("id"), p.UserID))
	return server.Respond(c, fiber.StatusOK, "Assistance request resolved successfully", ticket)
}

func (ac *AssistanceController) UpdateStatus(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form assistanceTypes.StatusForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	status, ok := assistanceTypes.NormalizeStatus(form.Status)
	if !ok {
		return server.Invalid(c, map[string]string{"status": "Status must be one of Pending, Resolved."})
	}

	ticket, err := ac.tickets.UpdateTicketStatus(c.UserContext(), p.Token, c.Params("id"), status)
	if err != nil {
		return server.Fail(c, err, "Failed to update assistance request")
	}
	ac.invalidate()
	return server.Respond(c, fiber.StatusOK, "Assistance request updated successfully", ticket)
}

func (ac *AssistanceController) invalidate() {
	if ac.snapshot != nil {
		ac.snapshot.Invalidate()
	}
}
