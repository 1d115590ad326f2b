package policy

import "github.com/tu-usuario/admin-locales/internal/domain/entity"

// MaxSuperAdmins es el tope de usuarios con rol superAdmin (activos o no).
const MaxSuperAdmins = 4

// Los guards operan sobre conteos agregados que el caso de uso obtiene del
// store inmediatamente antes de la mutación, dentro de la misma transacción.
// Los conteos incluyen a la entidad que se está mutando: "¿quedaría al menos
// uno?" se evalúa exigiendo más de uno antes de la acción.

// PuedeCrearSuperAdmin: se admite un superAdmin más mientras el total
// (activos e inactivos) esté bajo el máximo.
func PuedeCrearSuperAdmin(totales int) bool {
	return totales < MaxSuperAdmins
}

// PuedePromoverASuperAdmin: promover a quien ya es superAdmin es un no-op
// permitido; en otro caso aplica el mismo tope que la creación.
func PuedePromoverASuperAdmin(totales int, yaEra bool) bool {
	return yaEra || totales < MaxSuperAdmins
}

// PuedeDesactivarSuperAdmin: debe quedar al menos un superAdmin activo.
func PuedeDesactivarSuperAdmin(activos int) bool {
	return activos > 1
}

// PuedeDesactivarAdminDeLocal: debe quedar al menos un admin activo en el
// local. Se evalúa por separado para cada local que el admin atiende; basta
// uno que quedara en cero para bloquear la acción.
func PuedeDesactivarAdminDeLocal(adminsActivos int) bool {
	return adminsActivos > 1
}

// DejariaAdminSinLocales indica si la acción dejaría a un admin con cero
// locales asignados, lo cual está prohibido.
func DejariaAdminSinLocales(rol string, localesResultantes int) bool {
	return rol == entity.RolAdmin && localesResultantes == 0
}
