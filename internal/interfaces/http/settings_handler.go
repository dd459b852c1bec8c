package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
)

// SettingsHandler configuración de la empresa y el catálogo completo (protegido).
type SettingsHandler struct {
	settings *usecase.SettingsUseCase
	data     *usecase.DataUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(settings *usecase.SettingsUseCase, data *usecase.DataUseCase) *SettingsHandler {
	return &SettingsHandler{settings: settings, data: data}
}

// Get godoc
// @Summary      Configuración de la empresa
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CompanySettings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.settings.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración (parcial)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanySettingsRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.CompanySettings
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanySettingsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.settings.Update(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Catalog
// @Router       /api/catalog [get]
func (h *SettingsHandler) Export(c *fiber.Ctx) error {
	out, err := h.data.Export(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar catálogo
// @Description  Reemplaza el catálogo completo. El documento debe tener exactamente la forma exportada.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.Catalog
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog [put]
func (h *SettingsHandler) Import(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}
	out, err := h.data.Import(c.UserContext(), GetUserID(c), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Reiniciar catálogo
// @Tags         catalog
// @Security     Bearer
// @Success      204
// @Router       /api/catalog [delete]
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	if err := h.data.Reset(c.UserContext(), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
