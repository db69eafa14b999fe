package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Eddiexian/AI-Pr/internal/application/dto"
	"github.com/Eddiexian/AI-Pr/internal/application/usecase"
)

// LayoutHandler maneja las peticiones HTTP para layouts y sus componentes (protegido).
type LayoutHandler struct {
	layouts    *usecase.LayoutUseCase
	components *usecase.ComponentUseCase
}

// NewLayoutHandler construye el handler.
func NewLayoutHandler(layouts *usecase.LayoutUseCase, components *usecase.ComponentUseCase) *LayoutHandler {
	return &LayoutHandler{layouts: layouts, components: components}
}

// List godoc
// @Summary      Listar layouts
// @Tags         layouts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LayoutResponse
// @Router       /api/layouts [get]
func (h *LayoutHandler) List(c *fiber.Ctx) error {
	out, err := h.layouts.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear layout
// @Tags         layouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLayoutRequest  true  "name, width, height, floor, area"
// @Success      201   {object}  dto.LayoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/layouts [post]
func (h *LayoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLayoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.layouts.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener layout con sus componentes
// @Tags         layouts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del layout"
// @Success      200  {object}  dto.LayoutDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/layouts/{id} [get]
func (h *LayoutHandler) Get(c *fiber.Ctx) error {
	out, err := h.layouts.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar layout (parcial)
// @Tags         layouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del layout"
// @Param        body  body  dto.UpdateLayoutRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.LayoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/layouts/{id} [put]
func (h *LayoutHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLayoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.layouts.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar layout y sus componentes
// @Tags         layouts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del layout"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/layouts/{id} [delete]
func (h *LayoutHandler) Delete(c *fiber.Ctx) error {
	if err := h.layouts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "layout eliminado"})
}

// AddComponent godoc
// @Summary      Colocar componente en un layout
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del layout"
// @Param        body  body  dto.CreateComponentRequest  true  "type, geometría, code, props"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/layouts/{id}/components [post]
func (h *LayoutHandler) AddComponent(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.components.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateComponent godoc
// @Summary      Actualizar componente (parcial)
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del componente"
// @Param        body  body  dto.UpdateComponentRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/components/{id} [put]
func (h *LayoutHandler) UpdateComponent(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.components.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteComponent godoc
// @Summary      Eliminar componente
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del componente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id} [delete]
func (h *LayoutHandler) DeleteComponent(c *fiber.Ctx) error {
	if err := h.components.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "componente eliminado"})
}
