package rayid

import (
	"kv-storage/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the request ID.
const Header = "X-Request-Id"

// New returns a middleware that assigns every request an ID. An ID sent by the
// client is kept so both sides log the same value.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Locals(logger.RequestIDLocal, id)
		c.Set(Header, id)
		return c.Next()
	}
}
