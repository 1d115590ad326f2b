package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se
// hashea en el caso de uso). Locales vacío con actor admin hereda los del
// actor; el rol vacío se resuelve a "usuario".
type CreateUsuarioRequest struct {
	Nombre   string   `json:"nombre" validate:"required,min=1,max=200"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Telefono string   `json:"telefono" validate:"omitempty,max=30"`
	Rol      string   `json:"rol" validate:"omitempty,oneof=usuario admin superAdmin"`
	Locales  []string `json:"locales" validate:"omitempty,dive,uuid"`
}

// UpdateUsuarioRequest entrada para actualización parcial. Los campos de
// credencial no existen aquí a propósito: la actualización genérica jamás los
// toca. Para un actor admin, Rol/Locales/LocalPrincipal se descartan en
// silencio antes de aplicar.
type UpdateUsuarioRequest struct {
	Nombre         *string  `json:"nombre" validate:"omitempty,min=1,max=200"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Telefono       *string  `json:"telefono" validate:"omitempty,max=30"`
	Rol            *string  `json:"rol" validate:"omitempty,oneof=usuario admin superAdmin"`
	Locales        []string `json:"locales" validate:"omitempty,dive,uuid"`
	LocalPrincipal *string  `json:"localPrincipal" validate:"omitempty,uuid"`
}

// ListUsuariosRequest filtros del listado. El alcance del actor se aplica
// aparte, en el caso de uso.
type ListUsuariosRequest struct {
	PageRequest
	Rol      string `query:"rol" validate:"omitempty,oneof=usuario admin superAdmin"`
	Activo   *bool  `query:"activo"`
	Busqueda string `query:"busqueda" validate:"omitempty,max=100"`
	Local    string `query:"local" validate:"omitempty,uuid"`
}

// ResetPasswordRequest nueva credencial para el objetivo.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// CambiarEstadoRequest habilita o deshabilita (borrado lógico no: ver DELETE).
type CambiarEstadoRequest struct {
	Activo bool `json:"activo"`
}

// BootstrapSuperAdminRequest alta del primer superAdmin (sin actor previo).
type BootstrapSuperAdminRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UsuarioResponse proyección saneada de un usuario: sin hash, sin contadores
// de intentos, sin tokens de reseteo.
type UsuarioResponse struct {
	ID                   string             `json:"id"`
	Nombre               string             `json:"nombre"`
	Email                string             `json:"email"`
	Telefono             string             `json:"telefono,omitempty"`
	Rol                  string             `json:"rol"`
	Locales              []string           `json:"locales"`
	LocalPrincipal       string             `json:"localPrincipal,omitempty"`
	Activo               bool               `json:"activo"`
	EnLinea              bool               `json:"enLinea"`
	Verificado           bool               `json:"verificado"`
	EsAdministradorLocal bool               `json:"esAdministradorLocal"`
	UltimoAcceso         *time.Time         `json:"ultimoAcceso,omitempty"`
	CreadoPor            string             `json:"creadoPor,omitempty"`
	UltimaModificacion   *ModificacionDTO   `json:"ultimaModificacion,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// ModificacionDTO auditoría de la última mutación.
type ModificacionDTO struct {
	Usuario string    `json:"usuario"`
	Fecha   time.Time `json:"fecha"`
}

// UsuarioListResponse página de usuarios con su bloque de paginación.
type UsuarioListResponse struct {
	Usuarios   []UsuarioResponse `json:"usuarios"`
	Pagination Pagination        `json:"pagination"`
}
