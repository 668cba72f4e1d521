package review

import (
	"context"
	"fmt"

	"travel-portal/controllers/server"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/services/tables"
	"travel-portal/types"
	"travel-portal/types/booking"
	reviewTypes "travel-portal/types/review"
	"travel-portal/types/travelpackage"

	"github.com/gofiber/fiber/v2"
)

// ReviewGateway is the review service plus the lookups a new review needs.
type ReviewGateway interface {
	ListReviews(ctx context.Context, token, packageID string) ([]reviewTypes.Review, error)
	CreateReview(ctx context.Context, token string, r reviewTypes.Review) (*reviewTypes.Review, error)
	RespondReview(ctx context.Context, token, id, response string) (*reviewTypes.Review, error)
	GetBooking(ctx context.Context, token, id string) (*booking.Booking, error)
	GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error)
}

// ReplyDrafter suggests an agent reply to a review.
type ReplyDrafter interface {
	DraftReply(ctx context.Context, r reviewTypes.Review, packageTitle string) (string, error)
}

type ReviewController struct {
	gw        ReviewGateway
	assistant ReplyDrafter
}

func NewReviewController(gw ReviewGateway, assistant ReplyDrafter) *ReviewController {
	return &ReviewController{gw: gw, assistant: assistant}
}

func (rc *ReviewController) List(c *fiber.Ctx) error {
	list, err := rc.gw.ListReviews(c.UserContext(), "", c.Query("packageId"))
	if err != nil {
		return server.Fail(c, err, "Failed to list reviews")
	}
	if list == nil {
		list = []reviewTypes.Review{}
	}
	return server.Respond(c, fiber.StatusOK, "Reviews retrieved successfully", list)
}

// Create posts a review for a trip the caller has completed.
func (rc *ReviewController) Create(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form reviewTypes.CreateForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	if err := form.Validate(); err != nil {
		return server.Fail(c, err, "Invalid review")
	}

	b, err := rc.gw.GetBooking(c.UserContext(), p.Token, form.BookingID)
	if err != nil {
		return server.Fail(c, err, "Failed to load booking")
	}
	if b.UserID != p.UserID {
		return server.Forbidden(c)
	}
	if b.PackageID != form.PackageID || b.Status != booking.StatusCompleted {
		return server.Invalid(c, map[string]string{"bookingId": "You can only review a package after completing the trip."})
	}

	created, err := rc.gw.CreateReview(c.UserContext(), p.Token, reviewTypes.Review{
		UserID:    p.UserID,
		UserName:  p.Name,
		PackageID: form.PackageID,
		BookingID: form.BookingID,
		Rating:    form.Rating,
		Comment:   form.Comment,
	})
	if err != nil {
		return server.Fail(c, err, "Failed to create review")
	}
	logger.Info(fmt.Sprintf("Review %s posted by %s for package %s", created.ID, p.UserID, form.PackageID))
	return server.Respond(c, fiber.StatusCreated, "Review submitted successfully", created)
}

/*=============================================================================
| Agent
===============================================================================*/

// AgentList is the agent's review table.
func (rc *ReviewController) AgentList(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	list, err := rc.gw.ListReviews(c.UserContext(), p.Token, "")
	if err != nil {
		return server.Fail(c, err, "Failed to list reviews")
	}
	return server.Respond(c, fiber.StatusOK, "Reviews retrieved successfully", tables.Reviews.Apply(list, c.Queries()))
}

func (rc *ReviewController) Respond(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)

	var form reviewTypes.RespondForm
	if err := c.BodyParser(&form); err != nil {
		return server.BadRequest(c, err)
	}
	if err := form.Validate(); err != nil {
		return server.Fail(c, err, "Invalid response")
	}

	updated, err := rc.gw.RespondReview(c.UserContext(), p.Token, c.Params("id"), form.Response)
	if err != nil {
		return server.Fail(c, err, "Failed to respond to review")
	}
	return server.Respond(c, fiber.StatusOK, "Response saved successfully", updated)
}

// Draft asks the assistant for a suggested reply. Nothing is saved.
func (rc *ReviewController) Draft(c *fiber.Ctx) error {
	p, _ := middleware.GetPrincipal(c)
	id := c.Params("id")

	list, err := rc.gw.ListReviews(c.UserContext(), p.Token, "")
	if err != nil {
		return server.Fail(c, err, "Failed to load review")
	}
	var target *reviewTypes.Review
	for i := range list {
		if list[i].ID == id {
			target = &list[i]
			break
		}
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Review not found",
			Status:  fiber.StatusNotFound,
		})
	}

	title := target.PackageID
	if pkg, err := rc.gw.GetPackage(c.UserContext(), p.Token, target.PackageID); err == nil && pkg.Title != "" {
		title = pkg.Title
	}

	draft, err := rc.assistant.DraftReply(c.UserContext(), *target, title)
	if err != nil {
		return server.Fail(c, err, "Failed to draft reply")
	}
	return server.Respond(c, fiber.StatusOK, "Reply drafted successfully", fiber.Map{"draft": draft})
}
