package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/token"
	"github.com/hoanvu/atelier/params"
)

const AdminContextKey = "admin"

// RequireAdmin admits only requests carrying a valid admin token cookie and
// stores the principal in request locals.
func RequireAdmin(tokens *token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		principal := tokens.Verify(ctx.Cookies(params.AdminTokenCookieName))
		if principal == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Success: false,
				Message: "Unauthorized",
			})
		}
		ctx.Locals(AdminContextKey, principal)
		return ctx.Next()
	}
}
