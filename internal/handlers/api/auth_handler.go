package api

import (
	"errors"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/auth"
	"github.com/hoanvu/atelier/internal/token"
	"github.com/hoanvu/atelier/params"
)

var otpCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)

type AuthHandler struct {
	authService  *auth.Service
	tokens       *token.Service
	cookieSecure bool
}

func setRetryAfterHeader(ctx *fiber.Ctx, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
}

func (h *AuthHandler) PostSendOTP(ctx *fiber.Ctx) error {
	issued, err := h.authService.RequestCode(ctx.Context(), ctx.IP())
	if err != nil {
		var throttled *auth.ThrottledError
		if errors.As(err, &throttled) {
			setRetryAfterHeader(ctx, throttled.RetryAfter)
			return ctx.Status(fiber.StatusTooManyRequests).JSON(MessageResponse{
				Success: false,
				Message: "Too many OTP requests. Please try again later.",
			})
		}
		slog.Error("Failed to send OTP", "ip", ctx.IP(), "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Success: false,
			Message: "Failed to send OTP",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(SendOTPResponse{
		Success:   true,
		Message:   "OTP code sent",
		SessionID: issued.SessionID,
		Expires:   issued.ExpiresAt,
	})
}

func (h *AuthHandler) PostVerifyOTP(ctx *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if req.SessionID == "" || req.Code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Success: false,
			Message: "sessionId and code are required",
		})
	}
	if !otpCodeRegex.MatchString(req.Code) {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Success: false,
			Message: "code must be a 6-digit number",
		})
	}

	signed, principal, err := h.authService.VerifyCode(ctx.Context(), ctx.IP(), req.SessionID, req.Code)
	if err != nil {
		var throttled *auth.ThrottledError
		switch {
		case errors.As(err, &throttled):
			setRetryAfterHeader(ctx, throttled.RetryAfter)
			return ctx.Status(fiber.StatusTooManyRequests).JSON(MessageResponse{
				Success: false,
				Message: "Too many verification attempts. Please try again later.",
			})
		case errors.Is(err, auth.ErrInvalidCode):
			return ctx.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Success: false,
				Message: "Invalid or expired OTP code",
			})
		default:
			slog.Error("Failed to verify OTP", "ip", ctx.IP(), "error", err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
				Success: false,
				Message: "Failed to verify OTP",
			})
		}
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     params.AdminTokenCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(params.AdminTokenExpiration.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return ctx.Status(fiber.StatusOK).JSON(VerifyOTPResponse{
		Success: true,
		Message: "Authentication successful",
		User:    principal,
	})
}

func (h *AuthHandler) GetStatus(ctx *fiber.Ctx) error {
	principal := h.tokens.Verify(ctx.Cookies(params.AdminTokenCookieName))
	return ctx.Status(fiber.StatusOK).JSON(StatusResponse{
		Success:       true,
		Authenticated: principal != nil,
		User:          principal,
	})
}

// PostLogout clears the cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func (h *AuthHandler) PostLogout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     params.AdminTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return ctx.Status(fiber.StatusOK).JSON(MessageResponse{
		Success: true,
		Message: "Logged out",
	})
}

func NewAuthHandler(authService *auth.Service, tokens *token.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokens:       tokens,
		cookieSecure: cookieSecure,
	}
}
