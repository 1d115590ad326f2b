package repository

import (
	"context"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
)

// UsuarioFilter describe un listado/conteo filtrado de usuarios. El alcance
// del actor (admin restringido a sus locales, superAdmins excluidos) se
// pliega aquí para que la restricción viaje en la consulta y no como
// post-filtrado en memoria.
type UsuarioFilter struct {
	Rol      string // rol exacto; vacío = todos
	Activo   *bool  // nil = activos e inactivos (toggle "incluir inactivos")
	Busqueda string // texto libre sobre nombre/email, sin distinguir acentos
	Local    string // pertenencia a un local concreto

	// EnLocales restringe a usuarios con al menos un local en común con el
	// conjunto dado (alcance de un actor admin). Vacío = sin restricción.
	EnLocales []string
	// ExcluirRoles deja fuera los roles indicados independientemente del
	// resto de filtros.
	ExcluirRoles []string
}

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	List(ctx context.Context, f UsuarioFilter, limit, offset int) ([]*entity.Usuario, error)
	Count(ctx context.Context, f UsuarioFilter) (int, error)
	Update(ctx context.Context, u *entity.Usuario) error

	// CountSuperAdmins cuenta usuarios con rol superAdmin; con soloActivos
	// en false incluye también los desactivados (tope de creación).
	CountSuperAdmins(ctx context.Context, soloActivos bool) (int, error)
	// CountAdminsActivosDeLocal cuenta admins activos asignados al local.
	// El conteo es pre-mutación: los guards exigen > 1 porque el objetivo
	// activo está incluido en él.
	CountAdminsActivosDeLocal(ctx context.Context, localID string) (int, error)
}
