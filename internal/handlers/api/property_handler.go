package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/properties"
	"github.com/hoanvu/atelier/model"
)

type PropertyHandler struct {
	service *properties.Service
}

func (h *PropertyHandler) mapError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, properties.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(MessageResponse{Success: false, Message: "Property not found"})
	case errors.Is(err, properties.ErrInvalidInput):
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "title and summary are required"})
	case errors.Is(err, properties.ErrSlugConflict):
		return ctx.Status(fiber.StatusConflict).JSON(MessageResponse{Success: false, Message: "A property with this slug already exists"})
	default:
		slog.Error("Property operation failed", "path", ctx.Path(), "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(MessageResponse{Success: false, Message: "Internal server error"})
	}
}

func (req *propertyRequest) toModel() *model.Property {
	prop := &model.Property{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Area:        req.Area,
		Year:        req.Year,
		Status:      req.Status,
		CoverImage:  req.CoverImage,
		Published:   req.Published,
	}
	for _, img := range req.Images {
		prop.Images = append(prop.Images, model.PropertyImage{
			URL:      img.URL,
			Caption:  img.Caption,
			Position: img.Position,
		})
	}
	return prop
}

// GetProperties lists published properties for the public site.
func (h *PropertyHandler) GetProperties(ctx *fiber.Ctx) error {
	props, err := h.service.List(ctx.Context(), true)
	if err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.JSON(DataResponse{Success: true, Data: props})
}

func (h *PropertyHandler) GetProperty(ctx *fiber.Ctx) error {
	prop, err := h.service.GetPublished(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.JSON(DataResponse{Success: true, Data: prop})
}

// GetAllProperties lists every property, drafts included. Admin only.
func (h *PropertyHandler) GetAllProperties(ctx *fiber.Ctx) error {
	props, err := h.service.List(ctx.Context(), false)
	if err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.JSON(DataResponse{Success: true, Data: props})
}

func (h *PropertyHandler) PostProperty(ctx *fiber.Ctx) error {
	var req propertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "Invalid request body"})
	}
	prop := req.toModel()
	if err := h.service.Create(ctx.Context(), prop); err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(DataResponse{Success: true, Data: prop})
}

func (h *PropertyHandler) PutProperty(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "Invalid property id"})
	}
	var req propertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "Invalid request body"})
	}
	prop := req.toModel()
	prop.ID = uint(id)
	if err := h.service.Update(ctx.Context(), prop); err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.JSON(DataResponse{Success: true, Data: prop})
}

func (h *PropertyHandler) DeleteProperty(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(MessageResponse{Success: false, Message: "Invalid property id"})
	}
	if err := h.service.Delete(ctx.Context(), uint(id)); err != nil {
		return h.mapError(ctx, err)
	}
	return ctx.JSON(MessageResponse{Success: true, Message: "Property deleted"})
}

func NewPropertyHandler(service *properties.Service) *PropertyHandler {
	return &PropertyHandler{service: service}
}
