package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Eddiexian/AI-Pr/internal/application/dto"
	"github.com/Eddiexian/AI-Pr/internal/application/occupancy"
)

// DataHandler consultas de ocupación/WIP por código de bin (solo lectura).
type DataHandler struct {
	uc *occupancy.UseCase
}

// NewDataHandler construye el handler.
func NewDataHandler(uc *occupancy.UseCase) *DataHandler {
	return &DataHandler{uc: uc}
}

// Counts godoc
// @Summary      Resumen de ocupación por bin
// @Tags         data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BinCodesRequest  true  "binCodes"
// @Success      200   {object}  map[string]int
// @Router       /api/data/counts [post]
func (h *DataHandler) Counts(c *fiber.Ctx) error {
	var in dto.BinCodesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Counts(c.UserContext(), in.BinCodes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CassetteCounts godoc
// @Summary      Cantidad de contenedores por bin
// @Tags         data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BinCodesRequest  true  "binCodes"
// @Success      200   {object}  map[string]int
// @Router       /api/data/cassette-counts [post]
func (h *DataHandler) CassetteCounts(c *fiber.Ctx) error {
	var in dto.BinCodesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CassetteCounts(c.UserContext(), in.BinCodes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WIP godoc
// @Summary      Contenido completo (contenedores y work-items) por bin
// @Tags         data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BinCodesRequest  true  "binCodes"
// @Success      200   {object}  map[string][]entity.Container
// @Router       /api/data/wip [post]
func (h *DataHandler) WIP(c *fiber.Ctx) error {
	var in dto.BinCodesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.WIP(c.UserContext(), in.BinCodes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Locate godoc
// @Summary      Localizar work-item o contenedor
// @Tags         data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocateRequest  true  "workItemId o containerId"
// @Success      200   {object}  entity.Location
// @Router       /api/data/locate [post]
func (h *DataHandler) Locate(c *fiber.Ctx) error {
	var in dto.LocateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Locate(c.UserContext(), in.WorkItemID, in.ContainerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
