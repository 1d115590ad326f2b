package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
)

var _ repository.EstadisticasRepository = (*EstadisticasRepo)(nil)

// EstadisticasRepo consultas de solo lectura para los rollups por admin y
// por local. Solo se cuentan usuarios de rol usuario con activo=true: los
// borrados lógicos quedan fuera de las estadísticas.
type EstadisticasRepo struct {
	pool *pgxpool.Pool
}

// NewEstadisticasRepository construye el adaptador de estadísticas.
func NewEstadisticasRepository(pool *pgxpool.Pool) *EstadisticasRepo {
	return &EstadisticasRepo{pool: pool}
}

// ContarUsuariosPorLocal devuelve una fila por cada local pedido, con cero
// cuando el local no tiene usuarios (LEFT JOIN desde locales).
func (r *EstadisticasRepo) ContarUsuariosPorLocal(ctx context.Context, localIDs []string) ([]repository.ConteoLocalResult, error) {
	if len(localIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT l.id, l.nombre, COUNT(u.id)
	FROM locales l
	LEFT JOIN usuarios u
	       ON u.rol = 'usuario' AND u.activo AND l.id = ANY(u.locales)
	WHERE l.id = ANY($1)
	GROUP BY l.id, l.nombre
	ORDER BY l.nombre`

	rows, err := r.pool.Query(ctx, query, localIDs)
	if err != nil {
		return nil, fmt.Errorf("estadisticas.ContarUsuariosPorLocal: %w", err)
	}
	defer rows.Close()

	var results []repository.ConteoLocalResult
	for rows.Next() {
		var row repository.ConteoLocalResult
		if err := rows.Scan(&row.LocalID, &row.LocalNombre, &row.TotalUsuarios); err != nil {
			return nil, fmt.Errorf("estadisticas.ContarUsuariosPorLocal scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ActividadPorLocal calcula usuarios con acceso desde la fecha de corte y su
// porcentaje sobre el total del local, redondeado a 2 decimales y protegido
// contra división por cero.
func (r *EstadisticasRepo) ActividadPorLocal(ctx context.Context, localIDs []string, desde time.Time) ([]repository.ActividadLocalResult, error) {
	if len(localIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT
	    l.id,
	    COUNT(u.id)                                                  AS total,
	    COUNT(u.id) FILTER (WHERE u.ultimo_acceso >= $2)             AS recientes,
	    COALESCE(ROUND(
	        COUNT(u.id) FILTER (WHERE u.ultimo_acceso >= $2)::numeric * 100
	        / NULLIF(COUNT(u.id), 0), 2), 0)                         AS porcentaje
	FROM locales l
	LEFT JOIN usuarios u
	       ON u.rol = 'usuario' AND u.activo AND l.id = ANY(u.locales)
	WHERE l.id = ANY($1)
	GROUP BY l.id`

	rows, err := r.pool.Query(ctx, query, localIDs, desde)
	if err != nil {
		return nil, fmt.Errorf("estadisticas.ActividadPorLocal: %w", err)
	}
	defer rows.Close()

	var results []repository.ActividadLocalResult
	for rows.Next() {
		var row repository.ActividadLocalResult
		if err := rows.Scan(&row.LocalID, &row.TotalUsuarios, &row.ActivosRecientes, &row.PorcentajeActivos); err != nil {
			return nil, fmt.Errorf("estadisticas.ActividadPorLocal scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// UltimosUsuariosDeLocal devuelve los usuarios más recientes del local.
func (r *EstadisticasRepo) UltimosUsuariosDeLocal(ctx context.Context, localID string, limite int) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + `
		FROM usuarios
		WHERE rol = 'usuario' AND activo AND $1 = ANY(locales)
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, localID, limite)
	if err != nil {
		return nil, fmt.Errorf("estadisticas.UltimosUsuariosDeLocal: %w", err)
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuarioRow(rows)
		if err != nil {
			return nil, fmt.Errorf("estadisticas.UltimosUsuariosDeLocal scan: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
