package insurance

import (
	"context"

	"travel-portal/constants"
	"travel-portal/controllers/server"
	"travel-portal/middleware"
	"travel-portal/services"
	insuranceTypes "travel-portal/types/insurance"

	"github.com/gofiber/fiber/v2"
)

// PlanCatalog serves plans with a fallback.
type PlanCatalog interface {
	Plans(ctx context.Context, token string) ([]insuranceTypes.Plan, bool)
}

// SelectionGateway lists recorded insurance selections.
type SelectionGateway interface {
	ListSelectionsByBooking(ctx context.Context, token, bookingID string) ([]insuranceTypes.Selection, error)
	ListSelectionsByUser(ctx context.Context, token, userID string) ([]insuranceTypes.Selection, error)
}

type InsuranceController struct {
	catalog    PlanCatalog
	selections SelectionGateway
}

func NewInsuranceController(catalog PlanCatalog, selections SelectionGateway) *InsuranceController {
	return &InsuranceController{catalog: catalog, selections: selections}
}

// Plans never fails; the fallback plans are served when the insurance
// service is down.
func (ic *InsuranceController) Plans(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	plans, fallback := ic.catalog.Plans(c.UserContext(), p.Token)

	return server.Respond(c, fiber.StatusOK, "Insurance plans retrieved successfully", fiber.Map{
		"plans":    plans,
		"fallback": fallback,
	})
}

// Selections lists by bookingId or userId. Travelers only see their own.
func (ic *InsuranceController) Selections(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	bookingID := c.Query("bookingId")
	userID := c.Query("userId")

	var (
		list []insuranceTypes.Selection
		err  error
	)
	switch {
	case bookingID != "":
		list, err = ic.selections.ListSelectionsByBooking(c.UserContext(), p.Token, bookingID)
		if err == nil && !constants.IsStaff(p.Role) {
			list = ownedBy(list, p.UserID)
		}
	case userID != "":
		if !services.CanAccess(p, userID) {
			return server.Forbidden(c)
		}
		list, err = ic.selections.ListSelectionsByUser(c.UserContext(), p.Token, userID)
	default:
		list, err = ic.selections.ListSelectionsByUser(c.UserContext(), p.Token, p.UserID)
	}
	if err != nil {
		return server.Fail(c, err, "Failed to list insurance selections")
	}
	if list == nil {
		list = []insuranceTypes.Selection{}
	}
	return server.Respond(c, fiber.StatusOK, "Insurance selections retrieved successfully", list)
}

func ownedBy(list []insuranceTypes.Selection, userID string) []insuranceTypes.Selection {
	out := []insuranceTypes.Selection{}
	for _, s := range list {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}
