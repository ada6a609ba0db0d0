package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/assignment"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

// MetaHandler serves the reference data backing ticket forms: the routing
// directory listings and the fixed enumerations.
type MetaHandler struct {
	directory *assignment.Directory
}

// NewMetaHandler constructs handler.
func NewMetaHandler(directory *assignment.Directory) *MetaHandler {
	return &MetaHandler{directory: directory}
}

// Modules GET /api/modules.
func (h *MetaHandler) Modules(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.directory.Modules()})
}

// Developers GET /api/developers.
func (h *MetaHandler) Developers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.directory.Developers()})
}

// SupportEngineers GET /api/support-engineers.
func (h *MetaHandler) SupportEngineers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.directory.SupportEngineers()})
}

// Statuses GET /api/statuses.
func (h *MetaHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.ValidStatuses})
}

// ResolutionTypes GET /api/resolution-types.
func (h *MetaHandler) ResolutionTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.ResolutionTypes})
}
