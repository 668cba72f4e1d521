package server

import (
	"errors"
	"strings"
	"time"

	"travel-portal/httpServices/gateway"
	"travel-portal/logger"
	funnelModel "travel-portal/models/funnel"
	"travel-portal/services/assistant"
	"travel-portal/services/funnel"
	"travel-portal/services/validation"
	"travel-portal/types"

	"github.com/gofiber/fiber/v2"
)

var started = time.Now()

// Health reports that the server is up.
func Health(c *fiber.Ctx) error {
	return c.JSON(types.ApiResponse{
		Message: "OK",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"uptime": time.Since(started).Round(time.Second).String()},
	})
}

// Respond writes the standard envelope.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// BadRequest answers an unparseable body or query.
func BadRequest(c *fiber.Ctx, err error) error {
	logger.Error("Error parsing request", err)
	return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Invalid request body",
		Status:  fiber.StatusBadRequest,
	})
}

// Forbidden answers a caller acting on someone else's record.
func Forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
		Message: "You do not have access to this resource",
		Status:  fiber.StatusForbidden,
	})
}

// Invalid answers field validation errors.
func Invalid(c *fiber.Ctx, errs map[string]string) error {
	fe := validation.FieldErrors(errs)
	return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ValidationErrorResponse{
		Message: fe.First(),
		Status:  fiber.StatusUnprocessableEntity,
		Errors:  errs,
	})
}

// Fail maps err to a status and answers with it. context is logged for
// server-side failures.
func Fail(c *fiber.Ctx, err error, context string) error {
	var (
		fieldErrs validation.FieldErrors
		stageErr  *funnelModel.StageError
		payErr    *funnel.PaymentError
		apiErr    *gateway.APIError
	)

	switch {
	case errors.As(err, &fieldErrs):
		return Invalid(c, fieldErrs)
	case errors.As(err, &stageErr):
		return fail(c, fiber.StatusConflict, stageErr.Error())
	case errors.As(err, &payErr):
		return fail(c, fiber.StatusPaymentRequired, payErr.Message)
	case errors.Is(err, funnel.ErrSessionNotFound):
		return fail(c, fiber.StatusNotFound, "Booking session not found")
	case errors.Is(err, funnel.ErrNotOwner):
		return Forbidden(c)
	case errors.Is(err, funnel.ErrPackageUnavailable):
		return fail(c, fiber.StatusUnprocessableEntity, "This package is not available for booking.")
	case errors.Is(err, funnel.ErrUnknownPlan):
		return fail(c, fiber.StatusUnprocessableEntity, "Please select a valid insurance plan.")
	case errors.Is(err, funnel.ErrOrderMissing), errors.Is(err, funnel.ErrOrderMismatch), errors.Is(err, funnel.ErrStageConflict):
		return fail(c, fiber.StatusConflict, capitalize(err.Error()))
	case errors.Is(err, assistant.ErrDisabled):
		return fail(c, fiber.StatusServiceUnavailable, "Reply assistant is not configured")
	case errors.As(err, &apiErr):
		status := gateway.StatusOf(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error(context, err)
		}
		return fail(c, status, gateway.MessageOf(err))
	case errors.Is(err, funnel.ErrMissingBookingID):
		logger.Error(context, err)
		return fail(c, fiber.StatusBadGateway, "Service temporarily unavailable. Please try again.")
	}

	logger.Error(context, err)
	if errors.Is(err, gateway.ErrUnavailable) {
		return fail(c, fiber.StatusBadGateway, gateway.MessageOf(err))
	}
	return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.ErrorResponse{Message: message, Status: status})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
