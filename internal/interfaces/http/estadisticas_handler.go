package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/admin-locales/internal/application/usecase"
)

// EstadisticasHandler expone los rollups de solo lectura por admin.
type EstadisticasHandler struct {
	usuarios *usecase.UsuarioUseCase
	uc       *usecase.EstadisticasUseCase
}

// NewEstadisticasHandler construye el handler.
func NewEstadisticasHandler(usuarios *usecase.UsuarioUseCase, uc *usecase.EstadisticasUseCase) *EstadisticasHandler {
	return &EstadisticasHandler{usuarios: usuarios, uc: uc}
}

// Resumen godoc
// @Summary      Resumen de usuarios por local de un admin
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        adminId  query  string  false  "ID del admin (solo superAdmin; por defecto el propio)"
// @Success      200  {object}  dto.ResumenAdminDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/estadisticas/resumen [get]
func (h *EstadisticasHandler) Resumen(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Resumen(c.Context(), actor, c.Query("adminId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Detalle godoc
// @Summary      Detalle con actividad reciente por local de un admin
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        adminId  query  string  false  "ID del admin (solo superAdmin; por defecto el propio)"
// @Success      200  {object}  dto.DetalleAdminDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/estadisticas/detalle [get]
func (h *EstadisticasHandler) Detalle(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Detalle(c.Context(), actor, c.Query("adminId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Reporte PDF del detalle de un admin
// @Tags         estadisticas
// @Security     Bearer
// @Produce      application/pdf
// @Param        adminId  query  string  false  "ID del admin (solo superAdmin; por defecto el propio)"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/estadisticas/reporte [get]
func (h *EstadisticasHandler) Reporte(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.Reporte(c.Context(), actor, c.Query("adminId"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-estadisticas.pdf"`)
	return c.Send(pdf)
}
