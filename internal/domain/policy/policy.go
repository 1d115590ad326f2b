// Package policy concentra las decisiones de autorización entre roles y las
// reglas de cardinalidad administrativa. Todo es lógica pura: sin I/O, sin
// efectos; los casos de uso consultan aquí antes de tocar la persistencia
// para que list/get/create/update/delete no diverjan entre sí.
package policy

import "github.com/tu-usuario/admin-locales/internal/domain/entity"

// Actor es la identidad ya autenticada que ejecuta la acción: id, rol y
// locales asignados. La capa de transporte la resuelve antes de llegar aquí.
type Actor struct {
	ID      string
	Rol     string
	Locales []string
}

// EsSuperAdmin indica si el actor tiene el rol de mayor privilegio.
func (a Actor) EsSuperAdmin() bool { return a.Rol == entity.RolSuperAdmin }

// EsAdmin indica si el actor es administrador de locales.
func (a Actor) EsAdmin() bool { return a.Rol == entity.RolAdmin }

// comparteLocal indica si actor y objetivo tienen al menos un local en común.
func comparteLocal(a Actor, objetivo *entity.Usuario) bool {
	for _, l := range a.Locales {
		if objetivo.TieneLocal(l) {
			return true
		}
	}
	return false
}

// PuedeVer decide la visibilidad de un usuario concreto.
// superAdmin ve todo; admin solo ve objetivos con rol usuario que compartan
// al menos un local con él — nunca a otros admin ni a superAdmins.
func PuedeVer(actor Actor, objetivo *entity.Usuario) bool {
	switch actor.Rol {
	case entity.RolSuperAdmin:
		return true
	case entity.RolAdmin:
		return objetivo.Rol == entity.RolUsuario && comparteLocal(actor, objetivo)
	default:
		return false
	}
}

// PuedeCrear decide si el actor puede crear un usuario con el rol pedido.
// admin solo crea usuarios de rol usuario.
func PuedeCrear(actor Actor, rolDeseado string) bool {
	switch actor.Rol {
	case entity.RolSuperAdmin:
		return true
	case entity.RolAdmin:
		return rolDeseado == entity.RolUsuario
	default:
		return false
	}
}

// LocalesParaCreacion resuelve los locales del usuario nuevo según el actor.
// Para un admin, la selección debe ser subconjunto de sus propios locales; una
// selección vacía no se rechaza: por defecto hereda el conjunto completo del
// actor. Para superAdmin se respeta la selección tal cual.
func LocalesParaCreacion(actor Actor, solicitados []string) ([]string, bool) {
	if !actor.EsAdmin() {
		return solicitados, true
	}
	if len(solicitados) == 0 {
		heredados := make([]string, len(actor.Locales))
		copy(heredados, actor.Locales)
		return heredados, true
	}
	propios := make(map[string]struct{}, len(actor.Locales))
	for _, l := range actor.Locales {
		propios[l] = struct{}{}
	}
	for _, l := range solicitados {
		if _, ok := propios[l]; !ok {
			return nil, false
		}
	}
	return solicitados, true
}

// PuedeMutar decide si el actor puede modificar al objetivo. Mutar a un
// superAdmin existente exige actor superAdmin; un admin solo muta objetivos
// que puede ver.
func PuedeMutar(actor Actor, objetivo *entity.Usuario) bool {
	if objetivo.Rol == entity.RolSuperAdmin {
		return actor.EsSuperAdmin()
	}
	return PuedeVer(actor, objetivo)
}

// PuedeAsignarRol decide si el actor puede dejar al objetivo con rolNuevo.
// Solo un superAdmin asigna o conserva el rol superAdmin.
func PuedeAsignarRol(actor Actor, rolNuevo string) bool {
	if rolNuevo == entity.RolSuperAdmin {
		return actor.EsSuperAdmin()
	}
	return actor.EsSuperAdmin() || actor.EsAdmin()
}

// PuedeCambiarAsignaciones indica si el actor puede tocar rol, locales o
// localPrincipal en una actualización. Para un admin esos campos se
// descartan en silencio (la actualización sigue con el resto), no se rechaza.
func PuedeCambiarAsignaciones(actor Actor) bool {
	return actor.EsSuperAdmin()
}

// PuedeResetearPassword limita el reseteo: admin solo sobre usuarios de rol
// usuario que compartan local; los objetivos admin/superAdmin le están
// vedados.
func PuedeResetearPassword(actor Actor, objetivo *entity.Usuario) bool {
	if actor.EsSuperAdmin() {
		return true
	}
	return actor.EsAdmin() && objetivo.Rol == entity.RolUsuario && comparteLocal(actor, objetivo)
}

// PuedeCambiarEstado sigue la misma regla de alcance que el reseteo.
func PuedeCambiarEstado(actor Actor, objetivo *entity.Usuario) bool {
	return PuedeResetearPassword(actor, objetivo)
}

// PuedeEliminar: el borrado (lógico) es exclusivo del superAdmin.
func PuedeEliminar(actor Actor) bool {
	return actor.EsSuperAdmin()
}

// PuedeGestionarLocales: asignar, quitar o designar local principal de un
// admin es exclusivo del superAdmin.
func PuedeGestionarLocales(actor Actor) bool {
	return actor.EsSuperAdmin()
}
