package server

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Param returns a path-unescaped copy of a route parameter. Fiber reuses the
// request buffer, so values handed to other goroutines must not alias it.
func Param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.Clone(raw)
}

// Query returns a copy of a query parameter.
func Query(c *fiber.Ctx, name string) string {
	return strings.Clone(c.Query(name))
}
