package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// RequestContext gives every request a user context derived from base, so
// handlers waiting on ctx.Done() stop when base is cancelled on shutdown.
// A nil base leaves the request context untouched.
func RequestContext(base context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if base == nil {
			return c.Next()
		}
		ctx, cancel := context.WithCancel(base)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
