package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/admin-locales/internal/application/auth"
	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/application/usecase"
)

// AuthHandler autenticación y arranque del primer superAdmin.
type AuthHandler struct {
	auth     *auth.AuthUseCase
	usuarios *usecase.UsuarioUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(a *auth.AuthUseCase, usuarios *usecase.UsuarioUseCase) *AuthHandler {
	return &AuthHandler{auth: a, usuarios: usuarios}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.auth.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (marca fuera de línea)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BootstrapSuperAdmin godoc
// @Summary      Crear el primer superAdmin (solo con el sistema vacío)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BootstrapSuperAdminRequest  true  "Datos del superAdmin inicial"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/setup/superadmin [post]
func (h *AuthHandler) BootstrapSuperAdmin(c *fiber.Ctx) error {
	var in dto.BootstrapSuperAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.usuarios.CrearPrimerSuperAdmin(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
