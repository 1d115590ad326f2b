package domain

import "errors"

// Errores de dominio (sin dependencias externas). El transporte discrimina
// con errors.Is, nunca comparando mensajes.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUsuarioNotFound = errors.New("usuario no encontrado")
	ErrLocalNotFound   = errors.New("local no encontrado")

	ErrForbidden    = errors.New("acceso denegado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrInvariante agrupa las violaciones de cardinalidad administrativa:
	// superAdmins sobre el máximo, último superAdmin activo, último admin
	// activo de un local, admin sin locales.
	ErrInvariante = errors.New("la operación viola un invariante administrativo")

	ErrEmailYaRegistrado = errors.New("el email ya está registrado")
	ErrLocalYaAsignado   = errors.New("el local ya está asignado al usuario")
	ErrLocalNoAsignado   = errors.New("el local no está asignado al usuario")

	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaBloqueada       = errors.New("cuenta bloqueada temporalmente")
	ErrCuentaInactiva        = errors.New("la cuenta está desactivada")
)

// EsErrorDeNegocio distingue los fallos esperados del dominio de los fallos
// de infraestructura: solo estos últimos se registran como internos.
func EsErrorDeNegocio(err error) bool {
	for _, e := range []error{
		ErrNotFound, ErrUsuarioNotFound, ErrLocalNotFound,
		ErrForbidden, ErrUnauthorized, ErrInvalidInput, ErrConflict,
		ErrInvariante, ErrEmailYaRegistrado, ErrLocalYaAsignado,
		ErrLocalNoAsignado, ErrCredencialesInvalidas, ErrCuentaBloqueada,
		ErrCuentaInactiva,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
