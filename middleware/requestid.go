package middleware

import (
	"travel-portal/httpServices/gateway"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const requestIDKey = "requestId"

// RequestID tags each request with an id, echoed in X-Request-ID and
// forwarded on gateway calls.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The id outlives the request in the async log queue
		id := utils.CopyString(c.Get(fiber.HeaderXRequestID))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)
		c.SetUserContext(gateway.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
