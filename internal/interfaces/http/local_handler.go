package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/application/usecase"
)

// LocalHandler maneja el catálogo de locales.
type LocalHandler struct {
	usuarios *usecase.UsuarioUseCase
	uc       *usecase.LocalUseCase
}

// NewLocalHandler construye el handler.
func NewLocalHandler(usuarios *usecase.UsuarioUseCase, uc *usecase.LocalUseCase) *LocalHandler {
	return &LocalHandler{usuarios: usuarios, uc: uc}
}

// List godoc
// @Summary      Listar locales
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200  {object}  dto.LocalListResponse
// @Router       /api/locales [get]
func (h *LocalHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}
	out, err := h.uc.Listar(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener local por ID
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.LocalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locales/{id} [get]
func (h *LocalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear local
// @Tags         locales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocalRequest  true  "Datos del local"
// @Success      201   {object}  dto.LocalResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/locales [post]
func (h *LocalHandler) Create(c *fiber.Ctx) error {
	actor, err := h.usuarios.ResolverActor(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Crear(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
