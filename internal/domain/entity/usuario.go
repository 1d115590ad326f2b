package entity

import "time"

// Roles válidos para Usuario, en orden ascendente de privilegio.
const (
	RolUsuario    = "usuario"
	RolAdmin      = "admin"
	RolSuperAdmin = "superAdmin"
)

// RolValido indica si el rol pertenece al conjunto conocido.
func RolValido(rol string) bool {
	return rol == RolUsuario || rol == RolAdmin || rol == RolSuperAdmin
}

// Modificacion registra quién y cuándo aplicó la última mutación.
type Modificacion struct {
	Usuario string
	Fecha   time.Time
}

// Usuario representa un usuario del sistema. Los campos de credencial
// (PasswordHash, IntentosFallidos, BloqueadoHasta, TokenReset*) pertenecen al
// colaborador de credenciales: nunca viajan en respuestas ni se tocan en
// actualizaciones genéricas.
type Usuario struct {
	ID           string
	Nombre       string
	Email        string // único, comparación exacta
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Telefono     string
	Rol          string // usuario, admin, superAdmin

	// Locales es un conjunto ordenado por inserción: el primero define
	// LocalPrincipal cuando no hay uno designado explícitamente.
	Locales        []string
	LocalPrincipal string

	Activo               bool // false = borrado lógico
	EnLinea              bool // presencia; forzado a false al desactivar
	Verificado           bool
	EsAdministradorLocal bool // derivado: Rol == admin y len(Locales) > 0

	IntentosFallidos int
	BloqueadoHasta   *time.Time
	TokenReset       string
	TokenResetExpira *time.Time
	UltimoAcceso     *time.Time

	CreadoPor          string
	UltimaModificacion *Modificacion
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TieneLocal indica si el local está en el conjunto asignado.
func (u *Usuario) TieneLocal(localID string) bool {
	for _, l := range u.Locales {
		if l == localID {
			return true
		}
	}
	return false
}

// RecalcularDerivados recalcula EsAdministradorLocal y normaliza
// LocalPrincipal: si hay locales y el principal no pertenece al conjunto,
// el primero asignado pasa a ser el principal; sin locales no hay principal.
func (u *Usuario) RecalcularDerivados() {
	u.EsAdministradorLocal = u.Rol == RolAdmin && len(u.Locales) > 0
	if len(u.Locales) == 0 {
		u.LocalPrincipal = ""
		return
	}
	if !u.TieneLocal(u.LocalPrincipal) {
		u.LocalPrincipal = u.Locales[0]
	}
}

// Estampar registra la última modificación y actualiza UpdatedAt.
func (u *Usuario) Estampar(actorID string, ahora time.Time) {
	u.UltimaModificacion = &Modificacion{Usuario: actorID, Fecha: ahora}
	u.UpdatedAt = ahora
}
