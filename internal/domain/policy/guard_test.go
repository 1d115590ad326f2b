package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/policy"
)

func TestPuedeCrearSuperAdmin_TopeDeCuatro(t *testing.T) {
	tests := []struct {
		totales int
		want    bool
	}{
		{0, true},
		{3, true},
		{4, false}, // el quinto se rechaza
		{5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.PuedeCrearSuperAdmin(tt.totales),
			"totales=%d", tt.totales)
	}
}

func TestPuedePromoverASuperAdmin(t *testing.T) {
	assert.True(t, policy.PuedePromoverASuperAdmin(3, false))
	assert.False(t, policy.PuedePromoverASuperAdmin(4, false),
		"con el cupo lleno la promoción se rechaza")
	// quien ya es superAdmin puede "promoverse" aunque el cupo esté lleno: no-op
	assert.True(t, policy.PuedePromoverASuperAdmin(4, true))
}

func TestPuedeDesactivarSuperAdmin_DebeQuedarUno(t *testing.T) {
	// el conteo incluye al objetivo: con uno solo activo la acción se bloquea
	assert.False(t, policy.PuedeDesactivarSuperAdmin(1))
	assert.True(t, policy.PuedeDesactivarSuperAdmin(2))
}

func TestPuedeDesactivarAdminDeLocal_DebeQuedarUno(t *testing.T) {
	assert.False(t, policy.PuedeDesactivarAdminDeLocal(1),
		"el único admin activo del local no puede desactivarse")
	assert.True(t, policy.PuedeDesactivarAdminDeLocal(2))
}

func TestDejariaAdminSinLocales(t *testing.T) {
	assert.True(t, policy.DejariaAdminSinLocales(entity.RolAdmin, 0))
	assert.False(t, policy.DejariaAdminSinLocales(entity.RolAdmin, 1))
	// la regla solo aplica a admins
	assert.False(t, policy.DejariaAdminSinLocales(entity.RolUsuario, 0))
	assert.False(t, policy.DejariaAdminSinLocales(entity.RolSuperAdmin, 0))
}
