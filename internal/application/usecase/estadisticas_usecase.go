package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/policy"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	"github.com/tu-usuario/admin-locales/pkg/logger"
)

const (
	// ventana de "actividad reciente" para el detalle
	diasActividad = 30
	// usuarios más recientes por local en el detalle
	ultimosPorLocal = 5
)

// ReportGenerator genera el reporte descargable del detalle de un admin.
type ReportGenerator interface {
	GenerateReportePDF(ctx context.Context, adminNombre string, detalle *dto.DetalleAdminDTO) ([]byte, error)
}

// EstadisticasUseCase rollups de solo lectura por admin y por local. No muta
// estado ni interactúa con los invariantes.
type EstadisticasUseCase struct {
	estadisticas repository.EstadisticasRepository
	usuarios     repository.UsuarioRepository
	reportes     ReportGenerator
	log          *logger.Logger
}

// NewEstadisticasUseCase construye el caso de uso.
func NewEstadisticasUseCase(estadisticas repository.EstadisticasRepository, usuarios repository.UsuarioRepository, reportes ReportGenerator, log *logger.Logger) *EstadisticasUseCase {
	return &EstadisticasUseCase{estadisticas: estadisticas, usuarios: usuarios, reportes: reportes, log: log}
}

// resolverAdminObjetivo decide de quién son las estadísticas: un admin solo
// ve las propias; un superAdmin puede pedir las de cualquier admin.
func (uc *EstadisticasUseCase) resolverAdminObjetivo(ctx context.Context, actor policy.Actor, adminID string) (*entity.Usuario, error) {
	if adminID == "" {
		adminID = actor.ID
	}
	if actor.EsAdmin() && adminID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if !actor.EsAdmin() && !actor.EsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	admin, err := uc.usuarios.GetByID(ctx, adminID)
	if err != nil {
		uc.log.Operacion("estadisticas", actor.ID, adminID, err)
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if admin.Rol != entity.RolAdmin {
		return nil, domain.ErrUsuarioNotFound
	}
	return admin, nil
}

// Resumen conteo de usuarios (rol usuario) por cada local del admin más el
// total sumado.
func (uc *EstadisticasUseCase) Resumen(ctx context.Context, actor policy.Actor, adminID string) (*dto.ResumenAdminDTO, error) {
	admin, err := uc.resolverAdminObjetivo(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}

	conteos, err := uc.estadisticas.ContarUsuariosPorLocal(ctx, admin.Locales)
	if err != nil {
		uc.log.Operacion("estadisticas_resumen", actor.ID, admin.ID, err)
		return nil, err
	}

	out := &dto.ResumenAdminDTO{AdminID: admin.ID, Locales: make([]dto.ResumenLocalDTO, 0, len(conteos))}
	for _, c := range conteos {
		out.Locales = append(out.Locales, dto.ResumenLocalDTO{
			LocalID:       c.LocalID,
			LocalNombre:   c.LocalNombre,
			TotalUsuarios: c.TotalUsuarios,
		})
		out.TotalUsuarios += c.TotalUsuarios
	}
	return out, nil
}

// Detalle añade al resumen la actividad de los últimos 30 días (ultimoAcceso
// dentro de la ventana), el porcentaje de activos y los 5 usuarios más
// recientes de cada local.
//
// Conteos y actividad se consultan en paralelo (llamadas independientes).
func (uc *EstadisticasUseCase) Detalle(ctx context.Context, actor policy.Actor, adminID string) (*dto.DetalleAdminDTO, error) {
	admin, err := uc.resolverAdminObjetivo(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}
	return uc.detalleDe(ctx, actor, admin)
}

func (uc *EstadisticasUseCase) detalleDe(ctx context.Context, actor policy.Actor, admin *entity.Usuario) (*dto.DetalleAdminDTO, error) {
	desde := time.Now().AddDate(0, 0, -diasActividad)

	type conteosResult struct {
		rows []repository.ConteoLocalResult
		err  error
	}
	type actividadResult struct {
		rows []repository.ActividadLocalResult
		err  error
	}

	conteosCh := make(chan conteosResult, 1)
	actividadCh := make(chan actividadResult, 1)

	go func() {
		rows, err := uc.estadisticas.ContarUsuariosPorLocal(ctx, admin.Locales)
		conteosCh <- conteosResult{rows, err}
	}()
	go func() {
		rows, err := uc.estadisticas.ActividadPorLocal(ctx, admin.Locales, desde)
		actividadCh <- actividadResult{rows, err}
	}()

	conteos := <-conteosCh
	actividad := <-actividadCh

	if conteos.err != nil {
		uc.log.Operacion("estadisticas_detalle", actor.ID, admin.ID, conteos.err)
		return nil, conteos.err
	}
	if actividad.err != nil {
		uc.log.Operacion("estadisticas_detalle", actor.ID, admin.ID, actividad.err)
		return nil, actividad.err
	}

	porLocal := make(map[string]repository.ActividadLocalResult, len(actividad.rows))
	for _, a := range actividad.rows {
		porLocal[a.LocalID] = a
	}

	out := &dto.DetalleAdminDTO{AdminID: admin.ID, Locales: make([]dto.DetalleLocalDTO, 0, len(conteos.rows))}
	for _, c := range conteos.rows {
		detalle := dto.DetalleLocalDTO{
			LocalID:       c.LocalID,
			LocalNombre:   c.LocalNombre,
			TotalUsuarios: c.TotalUsuarios,
		}
		if a, ok := porLocal[c.LocalID]; ok {
			detalle.ActivosRecientes = a.ActivosRecientes
			detalle.PorcentajeActivos = a.PorcentajeActivos
		}

		ultimos, err := uc.estadisticas.UltimosUsuariosDeLocal(ctx, c.LocalID, ultimosPorLocal)
		if err != nil {
			uc.log.Operacion("estadisticas_detalle", actor.ID, admin.ID, err)
			return nil, err
		}
		detalle.UltimosUsuarios = make([]dto.UsuarioResponse, 0, len(ultimos))
		for _, u := range ultimos {
			detalle.UltimosUsuarios = append(detalle.UltimosUsuarios, *usuarioToResponse(u))
		}

		out.Locales = append(out.Locales, detalle)
		out.TotalUsuarios += c.TotalUsuarios
	}
	return out, nil
}

// Reporte genera el detalle y lo vuelca a PDF listo para descargar.
func (uc *EstadisticasUseCase) Reporte(ctx context.Context, actor policy.Actor, adminID string) ([]byte, error) {
	admin, err := uc.resolverAdminObjetivo(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}
	detalle, err := uc.detalleDe(ctx, actor, admin)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.reportes.GenerateReportePDF(ctx, admin.Nombre, detalle)
	if err != nil {
		uc.log.Operacion("estadisticas_reporte", actor.ID, admin.ID, err)
		return nil, err
	}
	return pdf, nil
}
