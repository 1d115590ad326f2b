package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/application/usecase"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
)

// fakeEstadisticasRepo devuelve rollups prefijados por local.
type fakeEstadisticasRepo struct {
	conteos   map[string]repository.ConteoLocalResult
	actividad map[string]repository.ActividadLocalResult
	ultimos   map[string][]*entity.Usuario
}

var _ repository.EstadisticasRepository = (*fakeEstadisticasRepo)(nil)

func (r *fakeEstadisticasRepo) ContarUsuariosPorLocal(_ context.Context, localIDs []string) ([]repository.ConteoLocalResult, error) {
	out := make([]repository.ConteoLocalResult, 0, len(localIDs))
	for _, id := range localIDs {
		if c, ok := r.conteos[id]; ok {
			out = append(out, c)
		} else {
			// un local sin usuarios sigue apareciendo con conteo cero
			out = append(out, repository.ConteoLocalResult{LocalID: id, LocalNombre: "Local " + id})
		}
	}
	return out, nil
}

func (r *fakeEstadisticasRepo) ActividadPorLocal(_ context.Context, localIDs []string, _ time.Time) ([]repository.ActividadLocalResult, error) {
	var out []repository.ActividadLocalResult
	for _, id := range localIDs {
		if a, ok := r.actividad[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeEstadisticasRepo) UltimosUsuariosDeLocal(_ context.Context, localID string, limite int) ([]*entity.Usuario, error) {
	us := r.ultimos[localID]
	if len(us) > limite {
		us = us[:limite]
	}
	return us, nil
}

// fakeReportGenerator captura la última generación.
type fakeReportGenerator struct {
	llamado bool
	nombre  string
}

func (g *fakeReportGenerator) GenerateReportePDF(_ context.Context, adminNombre string, _ *dto.DetalleAdminDTO) ([]byte, error) {
	g.llamado = true
	g.nombre = adminNombre
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────

func nuevoEntornoEstadisticas(t *testing.T) (*usecase.EstadisticasUseCase, *fakeUsuarioRepo, *fakeEstadisticasRepo, *fakeReportGenerator) {
	t.Helper()
	usuarios := newFakeUsuarioRepo()
	stats := &fakeEstadisticasRepo{
		conteos: map[string]repository.ConteoLocalResult{
			"l1": {LocalID: "l1", LocalNombre: "Local l1", TotalUsuarios: 10},
			"l2": {LocalID: "l2", LocalNombre: "Local l2", TotalUsuarios: 4},
		},
		actividad: map[string]repository.ActividadLocalResult{
			"l1": {LocalID: "l1", TotalUsuarios: 10, ActivosRecientes: 5, PorcentajeActivos: decimal.NewFromInt(50)},
		},
		ultimos: map[string][]*entity.Usuario{
			"l1": {{ID: "u-9", Nombre: "Reciente", Email: "r@x.com", Rol: entity.RolUsuario, Locales: []string{"l1"}, Activo: true}},
		},
	}
	gen := &fakeReportGenerator{}
	uc := usecase.NewEstadisticasUseCase(stats, usuarios, gen, testLogger())

	require.NoError(t, usuarios.Create(context.Background(), &entity.Usuario{
		ID: "ad-2", Nombre: "Admin Dos", Email: "ad2@x.com", Rol: entity.RolAdmin,
		Locales: []string{"l1", "l2", "l3"}, LocalPrincipal: "l1", Activo: true,
	}))
	return uc, usuarios, stats, gen
}

func TestResumen_SumaTotalesYLocalesVacios(t *testing.T) {
	uc, _, _, _ := nuevoEntornoEstadisticas(t)

	out, err := uc.Resumen(context.Background(), actorAdmin("l1"), "ad-2")
	require.ErrorIs(t, err, domain.ErrForbidden, "un admin no pide estadísticas de otro admin")

	// el propio admin sí
	actor := actorAdmin("l1", "l2", "l3")
	actor.ID = "ad-2"
	out, err = uc.Resumen(context.Background(), actor, "")
	require.NoError(t, err)
	assert.Equal(t, "ad-2", out.AdminID)
	require.Len(t, out.Locales, 3, "los tres locales del admin, con o sin usuarios")
	assert.Equal(t, 14, out.TotalUsuarios, "10 + 4 + 0")
	assert.Equal(t, 0, out.Locales[2].TotalUsuarios, "l3 aparece con conteo cero")
}

func TestResumen_SuperAdminPideCualquierAdmin(t *testing.T) {
	uc, _, _, _ := nuevoEntornoEstadisticas(t)

	out, err := uc.Resumen(context.Background(), actorSuperAdmin(), "ad-2")
	require.NoError(t, err)
	assert.Equal(t, "ad-2", out.AdminID)
}

func TestResumen_ObjetivoDebeSerAdmin(t *testing.T) {
	uc, usuarios, _, _ := nuevoEntornoEstadisticas(t)
	require.NoError(t, usuarios.Create(context.Background(), &entity.Usuario{
		ID: "u-1", Email: "ana@x.com", Rol: entity.RolUsuario, Activo: true,
	}))

	_, err := uc.Resumen(context.Background(), actorSuperAdmin(), "u-1")
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestDetalle_CombinaActividadYUltimos(t *testing.T) {
	uc, _, _, _ := nuevoEntornoEstadisticas(t)

	out, err := uc.Detalle(context.Background(), actorSuperAdmin(), "ad-2")
	require.NoError(t, err)
	require.Len(t, out.Locales, 3)

	l1 := out.Locales[0]
	assert.Equal(t, "l1", l1.LocalID)
	assert.Equal(t, 10, l1.TotalUsuarios)
	assert.Equal(t, 5, l1.ActivosRecientes)
	assert.True(t, decimal.NewFromInt(50).Equal(l1.PorcentajeActivos))
	require.Len(t, l1.UltimosUsuarios, 1)
	assert.Equal(t, "u-9", l1.UltimosUsuarios[0].ID)

	// local sin actividad registrada queda en cero
	l2 := out.Locales[1]
	assert.Equal(t, 0, l2.ActivosRecientes)
	assert.True(t, l2.PorcentajeActivos.IsZero())
}

func TestReporte_GeneraPDFConNombreDelAdmin(t *testing.T) {
	uc, _, _, gen := nuevoEntornoEstadisticas(t)

	pdf, err := uc.Reporte(context.Background(), actorSuperAdmin(), "ad-2")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.True(t, gen.llamado)
	assert.Equal(t, "Admin Dos", gen.nombre)
}
