package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/admin-locales/internal/application/usecase"
)

// AsignacionHandler expone las operaciones de asignación de locales a
// administradores.
type AsignacionHandler struct {
	usuarios *usecase.UsuarioUseCase
	uc       *usecase.AsignacionUseCase
}

// NewAsignacionHandler construye el handler.
func NewAsignacionHandler(usuarios *usecase.UsuarioUseCase, uc *usecase.AsignacionUseCase) *AsignacionHandler {
	return &AsignacionHandler{usuarios: usuarios, uc: uc}
}

// Asignar godoc
// @Summary      Asignar un local a un administrador
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del administrador"
// @Param        localId  path  string  true  "ID del local"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/locales/{localId} [post]
func (h *AsignacionHandler) Asignar(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AsignarLocal(c.Context(), actor, c.Params("id"), c.Params("localId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Quitar godoc
// @Summary      Quitar un local de un administrador
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del administrador"
// @Param        localId  path  string  true  "ID del local"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/locales/{localId} [delete]
func (h *AsignacionHandler) Quitar(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.QuitarLocal(c.Context(), actor, c.Params("id"), c.Params("localId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DefinirPrincipal godoc
// @Summary      Definir el local principal de un administrador
// @Tags         asignaciones
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del administrador"
// @Param        localId  path  string  true  "ID del local"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/locales/{localId}/principal [put]
func (h *AsignacionHandler) DefinirPrincipal(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.DefinirLocalPrincipal(c.Context(), actor, c.Params("id"), c.Params("localId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
