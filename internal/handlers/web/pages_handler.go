package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/properties"
	"github.com/hoanvu/atelier/params"
)

// PagesHandler serves the public marketing pages. Markup lives in the view
// templates; this layer only assembles page data.
type PagesHandler struct {
	properties *properties.Service
	siteName   string
}

func (h *PagesHandler) pageVars(vars fiber.Map) fiber.Map {
	vars["siteName"] = h.siteName
	return vars
}

func (h *PagesHandler) GetHome(ctx *fiber.Ctx) error {
	latest, err := h.properties.Latest(ctx.Context(), params.HomePropertyCount)
	if err != nil {
		return err
	}
	return ctx.Render("home", h.pageVars(fiber.Map{
		"properties": latest,
	}))
}

func (h *PagesHandler) GetProperties(ctx *fiber.Ctx) error {
	props, err := h.properties.List(ctx.Context(), true)
	if err != nil {
		return err
	}
	return ctx.Render("properties", h.pageVars(fiber.Map{
		"properties": props,
	}))
}

func (h *PagesHandler) GetProperty(ctx *fiber.Ctx) error {
	prop, err := h.properties.GetPublished(ctx.Context(), ctx.Params("slug"))
	if errors.Is(err, properties.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return ctx.Render("property", h.pageVars(fiber.Map{
		"property": prop,
	}))
}

func (h *PagesHandler) GetContact(ctx *fiber.Ctx) error {
	return ctx.Render("contact", h.pageVars(fiber.Map{}))
}

func NewPagesHandler(propertyService *properties.Service, siteName string) *PagesHandler {
	return &PagesHandler{
		properties: propertyService,
		siteName:   siteName,
	}
}
