package ratelimit

import (
	"github.com/gofiber/fiber/v2"
)

// New rejects requests from client IPs that are over quota with 429.
func New(limiter Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.UserContext(), c.IP()) {
			return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
		}
		return c.Next()
	}
}
