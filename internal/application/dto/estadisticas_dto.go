package dto

import "github.com/shopspring/decimal"

// ResumenLocalDTO conteo de usuarios (rol usuario) de un local del admin.
type ResumenLocalDTO struct {
	LocalID       string `json:"localId"`
	LocalNombre   string `json:"localNombre"`
	TotalUsuarios int    `json:"totalUsuarios"`
}

// ResumenAdminDTO rollup por admin: conteo por local y total sumado.
type ResumenAdminDTO struct {
	AdminID       string            `json:"adminId"`
	Locales       []ResumenLocalDTO `json:"locales"`
	TotalUsuarios int               `json:"totalUsuarios"`
}

// DetalleLocalDTO añade actividad de los últimos 30 días y los usuarios más
// recientes del local.
type DetalleLocalDTO struct {
	LocalID           string            `json:"localId"`
	LocalNombre       string            `json:"localNombre"`
	TotalUsuarios     int               `json:"totalUsuarios"`
	ActivosRecientes  int               `json:"activosRecientes"`
	PorcentajeActivos decimal.Decimal   `json:"porcentajeActivos"`
	UltimosUsuarios   []UsuarioResponse `json:"ultimosUsuarios"`
}

// DetalleAdminDTO rollup detallado por admin.
type DetalleAdminDTO struct {
	AdminID       string            `json:"adminId"`
	Locales       []DetalleLocalDTO `json:"locales"`
	TotalUsuarios int               `json:"totalUsuarios"`
}
