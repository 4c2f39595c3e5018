package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/contact"
	"github.com/hoanvu/atelier/internal/ratelimit"
	"github.com/hoanvu/atelier/model"
	"github.com/hoanvu/atelier/params"
)

type ContactHandler struct {
	service  *contact.Service
	limiters *ratelimit.Factory
}

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

func (h *ContactHandler) PostContact(ctx *fiber.Ctx) error {
	limiter := h.limiters.Limiter(params.ContactIPLimit, params.ContactRateLimitWindow)
	res, err := limiter.Check(ctx.Context(), "contact:"+ctx.IP())
	if err != nil {
		slog.Error("Contact rate limit check failed", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{Success: false, Message: "Failed to submit inquiry"})
	}
	if !res.Allowed {
		setRetryAfterHeader(ctx, res.RetryAfter)
		return ctx.Status(fiber.StatusTooManyRequests).JSON(MessageResponse{
			Success: false,
			Message: "Too many inquiries. Please try again later.",
		})
	}

	var req contactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "Invalid request body"})
	}
	if err := validateContactRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: err.Error()})
	}

	inquiry := &model.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.service.Submit(ctx.Context(), inquiry); err != nil {
		slog.Error("Failed to store inquiry", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{Success: false, Message: "Failed to submit inquiry"})
	}

	return ctx.Status(fiber.StatusOK).JSON(contactResponse{
		Success:   true,
		Message:   "Thank you, we will get back to you shortly.",
		Reference: inquiry.Reference,
	})
}

// GetInquiries lists submitted inquiries. Admin only.
func (h *ContactHandler) GetInquiries(ctx *fiber.Ctx) error {
	inquiries, err := h.service.List(ctx.Context())
	if err != nil {
		slog.Error("Failed to list inquiries", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{Success: false, Message: "Internal server error"})
	}
	return ctx.JSON(DataResponse{Success: true, Data: inquiries})
}

func NewContactHandler(service *contact.Service, limiters *ratelimit.Factory) *ContactHandler {
	return &ContactHandler{service: service, limiters: limiters}
}
