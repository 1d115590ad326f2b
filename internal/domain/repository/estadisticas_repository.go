package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
)

// ConteoLocalResult total de usuarios (rol usuario) asignados a un local.
type ConteoLocalResult struct {
	LocalID       string
	LocalNombre   string
	TotalUsuarios int
}

// ActividadLocalResult actividad reciente de un local: usuarios con acceso
// desde la fecha de corte y su porcentaje sobre el total del local.
type ActividadLocalResult struct {
	LocalID           string
	TotalUsuarios     int
	ActivosRecientes  int
	PorcentajeActivos decimal.Decimal
}

// EstadisticasRepository consultas de solo lectura para los rollups
// por admin y por local. No muta estado ni interactúa con invariantes.
type EstadisticasRepository interface {
	ContarUsuariosPorLocal(ctx context.Context, localIDs []string) ([]ConteoLocalResult, error)
	ActividadPorLocal(ctx context.Context, localIDs []string, desde time.Time) ([]ActividadLocalResult, error)
	UltimosUsuariosDeLocal(ctx context.Context, localID string, limite int) ([]*entity.Usuario, error)
}
