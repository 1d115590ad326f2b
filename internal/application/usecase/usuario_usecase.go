package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/policy"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	"github.com/tu-usuario/admin-locales/pkg/logger"
	"github.com/tu-usuario/admin-locales/pkg/password"
)

// TxRunner ejecuta fn con un repositorio de usuarios atado a una transacción.
// Las mutaciones con guard (desactivar, eliminar, promover a superAdmin)
// corren conteo y escritura en la misma transacción para que el check-then-act
// no se cruce con otra petición concurrente.
type TxRunner interface {
	Run(ctx context.Context, fn func(usuarios repository.UsuarioRepository) error) error
}

// UsuarioUseCase aplica las reglas de ciclo de vida de usuarios: listado con
// alcance por rol, creación, actualización con recorte de campos, borrado
// lógico, reseteo de credencial y habilitación/deshabilitación.
type UsuarioUseCase struct {
	usuarios repository.UsuarioRepository
	locales  repository.LocalRepository
	tx       TxRunner
	hasher   password.Hasher
	log      *logger.Logger
}

// NewUsuarioUseCase construye el caso de uso con sus puertos.
func NewUsuarioUseCase(
	usuarios repository.UsuarioRepository,
	locales repository.LocalRepository,
	tx TxRunner,
	hasher password.Hasher,
	log *logger.Logger,
) *UsuarioUseCase {
	return &UsuarioUseCase{usuarios: usuarios, locales: locales, tx: tx, hasher: hasher, log: log}
}

// ResolverActor carga la identidad fresca del actor autenticado (rol y
// locales desde la DB, no desde el token). Actores desactivados no operan.
func (uc *UsuarioUseCase) ResolverActor(ctx context.Context, actorID string) (policy.Actor, error) {
	u, err := uc.usuarios.GetByID(ctx, actorID)
	if err != nil {
		uc.log.Operacion("resolver_actor", actorID, "", err)
		return policy.Actor{}, err
	}
	if u == nil {
		return policy.Actor{}, domain.ErrUnauthorized
	}
	if !u.Activo {
		return policy.Actor{}, domain.ErrCuentaInactiva
	}
	return policy.Actor{ID: u.ID, Rol: u.Rol, Locales: u.Locales}, nil
}

// Listar devuelve una página de usuarios. Para un actor admin, el alcance se
// pliega en el filtro de la consulta: solo usuarios de rol usuario en sus
// locales; los superAdmin quedan fuera de su resultado pase lo que pase.
func (uc *UsuarioUseCase) Listar(ctx context.Context, actor policy.Actor, req dto.ListUsuariosRequest) (*dto.UsuarioListResponse, error) {
	if !actor.EsSuperAdmin() && !actor.EsAdmin() {
		return nil, domain.ErrForbidden
	}
	req.DefaultPage()

	f := repository.UsuarioFilter{
		Rol:      req.Rol,
		Activo:   req.Activo,
		Busqueda: req.Busqueda,
		Local:    req.Local,
	}
	if actor.EsAdmin() {
		// Sin locales asignados no hay alcance: la página sale vacía en vez
		// de dejar el filtro de solapamiento sin condición.
		if len(actor.Locales) == 0 {
			return &dto.UsuarioListResponse{
				Usuarios:   []dto.UsuarioResponse{},
				Pagination: dto.NewPagination(0, req.Page, req.Limit),
			}, nil
		}
		f.EnLocales = actor.Locales
		f.ExcluirRoles = []string{entity.RolSuperAdmin, entity.RolAdmin}
	}

	total, err := uc.usuarios.Count(ctx, f)
	if err != nil {
		uc.log.Operacion("listar_usuarios", actor.ID, "", err)
		return nil, err
	}
	lista, err := uc.usuarios.List(ctx, f, req.Limit, req.Offset())
	if err != nil {
		uc.log.Operacion("listar_usuarios", actor.ID, "", err)
		return nil, err
	}

	out := &dto.UsuarioListResponse{
		Usuarios:   make([]dto.UsuarioResponse, 0, len(lista)),
		Pagination: dto.NewPagination(total, req.Page, req.Limit),
	}
	for _, u := range lista {
		out.Usuarios = append(out.Usuarios, *usuarioToResponse(u))
	}
	return out, nil
}

// Obtener devuelve un usuario por id respetando la visibilidad del actor.
func (uc *UsuarioUseCase) Obtener(ctx context.Context, actor policy.Actor, id string) (*dto.UsuarioResponse, error) {
	objetivo, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		uc.log.Operacion("obtener_usuario", actor.ID, id, err)
		return nil, err
	}
	if objetivo == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if !policy.PuedeVer(actor, objetivo) {
		return nil, domain.ErrForbidden
	}
	return usuarioToResponse(objetivo), nil
}

// Crear da de alta un usuario. El rol vacío se resuelve a usuario; para un
// actor admin los locales pedidos deben ser subconjunto de los suyos (vacío
// hereda todos). Un admin nuevo requiere al menos un local. La creación de un
// superAdmin corre bajo el tope global dentro de una transacción.
func (uc *UsuarioUseCase) Crear(ctx context.Context, actor policy.Actor, req dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := req.Rol
	if rol == "" {
		rol = entity.RolUsuario
	}
	if !entity.RolValido(rol) {
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, rol)
	}
	if !policy.PuedeCrear(actor, rol) {
		return nil, domain.ErrForbidden
	}
	locales, ok := policy.LocalesParaCreacion(actor, req.Locales)
	if !ok {
		return nil, domain.ErrForbidden
	}
	locales = dedupe(locales)
	if policy.DejariaAdminSinLocales(rol, len(locales)) {
		return nil, fmt.Errorf("%w: un admin requiere al menos un local asignado", domain.ErrInvalidInput)
	}
	if err := uc.validarLocales(ctx, locales); err != nil {
		return nil, err
	}

	existente, err := uc.usuarios.GetByEmail(ctx, req.Email)
	if err != nil {
		uc.log.Operacion("crear_usuario", actor.ID, "", err)
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailYaRegistrado
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	nuevo := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: hash,
		Telefono:     req.Telefono,
		Rol:          rol,
		Locales:      locales,
		Activo:       true,
		EnLinea:      false,
		Verificado:   true,
		CreadoPor:    actor.ID,
		CreatedAt:    ahora,
	}
	if len(locales) > 0 {
		nuevo.LocalPrincipal = locales[0]
	}
	nuevo.RecalcularDerivados()
	nuevo.Estampar(actor.ID, ahora)

	if rol == entity.RolSuperAdmin {
		err = uc.tx.Run(ctx, func(usuarios repository.UsuarioRepository) error {
			totales, err := usuarios.CountSuperAdmins(ctx, false)
			if err != nil {
				return err
			}
			if !policy.PuedeCrearSuperAdmin(totales) {
				return fmt.Errorf("%w: máximo %d superAdmins", domain.ErrInvariante, policy.MaxSuperAdmins)
			}
			return usuarios.Create(ctx, nuevo)
		})
	} else {
		err = uc.usuarios.Create(ctx, nuevo)
	}
	if err != nil {
		return nil, err
	}
	return usuarioToResponse(nuevo), nil
}

// Actualizar aplica una actualización parcial. Para un actor admin, los
// campos rol/locales/localPrincipal se descartan en silencio y la
// actualización sigue con el resto; la promoción a superAdmin corre bajo el
// tope global. La credencial nunca se toca por esta vía.
func (uc *UsuarioUseCase) Actualizar(ctx context.Context, actor policy.Actor, id string, req dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	objetivo, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		uc.log.Operacion("actualizar_usuario", actor.ID, id, err)
		return nil, err
	}
	if objetivo == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if !policy.PuedeMutar(actor, objetivo) {
		return nil, domain.ErrForbidden
	}

	// Recorte silencioso: un admin no decide rol ni asignaciones.
	if !policy.PuedeCambiarAsignaciones(actor) {
		req.Rol = nil
		req.Locales = nil
		req.LocalPrincipal = nil
	}

	if req.Rol != nil {
		if !entity.RolValido(*req.Rol) {
			return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, *req.Rol)
		}
		if !policy.PuedeAsignarRol(actor, *req.Rol) {
			return nil, domain.ErrForbidden
		}
	}

	localesNuevos := req.Locales
	if localesNuevos != nil {
		localesNuevos = dedupe(localesNuevos)
		if err := uc.validarLocales(ctx, localesNuevos); err != nil {
			return nil, err
		}
	}

	// Promoción a admin sin locales: el actor debe aportar al menos uno.
	rolResultante := objetivo.Rol
	if req.Rol != nil {
		rolResultante = *req.Rol
	}
	localesResultantes := objetivo.Locales
	if localesNuevos != nil {
		localesResultantes = localesNuevos
	}
	if policy.DejariaAdminSinLocales(rolResultante, len(localesResultantes)) {
		return nil, fmt.Errorf("%w: un admin requiere al menos un local asignado", domain.ErrInvalidInput)
	}

	if req.Email != nil && *req.Email != objetivo.Email {
		otro, err := uc.usuarios.GetByEmail(ctx, *req.Email)
		if err != nil {
			uc.log.Operacion("actualizar_usuario", actor.ID, id, err)
			return nil, err
		}
		if otro != nil {
			return nil, domain.ErrEmailYaRegistrado
		}
		objetivo.Email = *req.Email
	}
	if req.Nombre != nil {
		objetivo.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		objetivo.Telefono = *req.Telefono
	}

	promueveASuper := req.Rol != nil && *req.Rol == entity.RolSuperAdmin && objetivo.Rol != entity.RolSuperAdmin

	if req.Rol != nil {
		objetivo.Rol = *req.Rol
	}
	if localesNuevos != nil {
		objetivo.Locales = localesNuevos
		// El primer local suministrado pasa a ser el principal.
		if len(localesNuevos) > 0 {
			objetivo.LocalPrincipal = localesNuevos[0]
		} else {
			objetivo.LocalPrincipal = ""
		}
	}
	if req.LocalPrincipal != nil {
		if !objetivo.TieneLocal(*req.LocalPrincipal) {
			return nil, fmt.Errorf("%w: localPrincipal debe pertenecer a los locales asignados", domain.ErrInvalidInput)
		}
		objetivo.LocalPrincipal = *req.LocalPrincipal
	}

	objetivo.RecalcularDerivados()
	objetivo.Estampar(actor.ID, time.Now())

	if promueveASuper {
		err = uc.tx.Run(ctx, func(usuarios repository.UsuarioRepository) error {
			totales, err := usuarios.CountSuperAdmins(ctx, false)
			if err != nil {
				return err
			}
			// La promoción cuenta al objetivo como alta nueva; quien ya es
			// superAdmin no pasa por aquí.
			if !policy.PuedePromoverASuperAdmin(totales, false) {
				return fmt.Errorf("%w: máximo %d superAdmins", domain.ErrInvariante, policy.MaxSuperAdmins)
			}
			return usuarios.Update(ctx, objetivo)
		})
	} else {
		err = uc.usuarios.Update(ctx, objetivo)
	}
	if err != nil {
		uc.log.Operacion("actualizar_usuario", actor.ID, id, err)
		return nil, err
	}
	return usuarioToResponse(objetivo), nil
}

// Eliminar es siempre borrado lógico (activo=false) y exclusivo del
// superAdmin. Los guards de cardinalidad corren dentro de la transacción.
func (uc *UsuarioUseCase) Eliminar(ctx context.Context, actor policy.Actor, id string) error {
	if !policy.PuedeEliminar(actor) {
		return domain.ErrForbidden
	}
	_, err := uc.desactivar(ctx, actor, id, "eliminar_usuario")
	return err
}

// CambiarEstado habilita o deshabilita un usuario. Deshabilitar fuerza
// enLinea=false y corre los guards; habilitar no tiene guard (solo aumenta
// los conteos).
func (uc *UsuarioUseCase) CambiarEstado(ctx context.Context, actor policy.Actor, id string, activo bool) (*dto.UsuarioResponse, error) {
	objetivo, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		uc.log.Operacion("cambiar_estado", actor.ID, id, err)
		return nil, err
	}
	if objetivo == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if !policy.PuedeCambiarEstado(actor, objetivo) {
		return nil, domain.ErrForbidden
	}

	if !activo {
		apagado, err := uc.desactivar(ctx, actor, id, "cambiar_estado")
		if err != nil {
			return nil, err
		}
		return usuarioToResponse(apagado), nil
	}

	objetivo.Activo = true
	objetivo.Estampar(actor.ID, time.Now())
	if err := uc.usuarios.Update(ctx, objetivo); err != nil {
		uc.log.Operacion("cambiar_estado", actor.ID, id, err)
		return nil, err
	}
	return usuarioToResponse(objetivo), nil
}

// desactivar aplica los guards de cardinalidad y el apagado dentro de una
// sola transacción: conteos pre-mutación, umbral > 1 (el objetivo activo
// está incluido en el conteo).
func (uc *UsuarioUseCase) desactivar(ctx context.Context, actor policy.Actor, id, op string) (*entity.Usuario, error) {
	var apagado *entity.Usuario
	err := uc.tx.Run(ctx, func(usuarios repository.UsuarioRepository) error {
		objetivo, err := usuarios.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if objetivo == nil {
			return domain.ErrUsuarioNotFound
		}
		if objetivo.Activo {
			switch objetivo.Rol {
			case entity.RolSuperAdmin:
				activos, err := usuarios.CountSuperAdmins(ctx, true)
				if err != nil {
					return err
				}
				if !policy.PuedeDesactivarSuperAdmin(activos) {
					return fmt.Errorf("%w: debe quedar al menos un superAdmin activo", domain.ErrInvariante)
				}
			case entity.RolAdmin:
				// Un local que quedara en cero bloquea toda la acción.
				for _, localID := range objetivo.Locales {
					activos, err := usuarios.CountAdminsActivosDeLocal(ctx, localID)
					if err != nil {
						return err
					}
					if !policy.PuedeDesactivarAdminDeLocal(activos) {
						return fmt.Errorf("%w: el local %s quedaría sin admin activo", domain.ErrInvariante, localID)
					}
				}
			}
		}
		objetivo.Activo = false
		objetivo.EnLinea = false
		objetivo.Estampar(actor.ID, time.Now())
		if err := usuarios.Update(ctx, objetivo); err != nil {
			return err
		}
		apagado = objetivo
		return nil
	})
	if err != nil {
		if !domain.EsErrorDeNegocio(err) {
			uc.log.Operacion(op, actor.ID, id, err)
		}
		return nil, err
	}
	return apagado, nil
}

// ResetearPassword fija una nueva credencial y limpia contador de intentos,
// bloqueo y token de reseteo.
func (uc *UsuarioUseCase) ResetearPassword(ctx context.Context, actor policy.Actor, id string, req dto.ResetPasswordRequest) error {
	objetivo, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		uc.log.Operacion("resetear_password", actor.ID, id, err)
		return err
	}
	if objetivo == nil {
		return domain.ErrUsuarioNotFound
	}
	if !policy.PuedeResetearPassword(actor, objetivo) {
		return domain.ErrForbidden
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	objetivo.PasswordHash = hash
	objetivo.IntentosFallidos = 0
	objetivo.BloqueadoHasta = nil
	objetivo.TokenReset = ""
	objetivo.TokenResetExpira = nil
	objetivo.Estampar(actor.ID, time.Now())

	if err := uc.usuarios.Update(ctx, objetivo); err != nil {
		uc.log.Operacion("resetear_password", actor.ID, id, err)
		return err
	}
	return nil
}

// CrearPrimerSuperAdmin es la vía de inicialización: solo funciona mientras
// no exista ningún superAdmin (activo o no) y no exige actor previo.
func (uc *UsuarioUseCase) CrearPrimerSuperAdmin(ctx context.Context, req dto.BootstrapSuperAdminRequest) (*dto.UsuarioResponse, error) {
	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	nuevo := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: hash,
		Rol:          entity.RolSuperAdmin,
		Activo:       true,
		Verificado:   true,
		CreatedAt:    ahora,
	}
	nuevo.Estampar(nuevo.ID, ahora)

	err = uc.tx.Run(ctx, func(usuarios repository.UsuarioRepository) error {
		totales, err := usuarios.CountSuperAdmins(ctx, false)
		if err != nil {
			return err
		}
		if totales > 0 {
			return fmt.Errorf("%w: el sistema ya fue inicializado", domain.ErrConflict)
		}
		return usuarios.Create(ctx, nuevo)
	})
	if err != nil {
		return nil, err
	}
	return usuarioToResponse(nuevo), nil
}

// validarLocales verifica que cada id referenciado exista.
func (uc *UsuarioUseCase) validarLocales(ctx context.Context, ids []string) error {
	for _, id := range ids {
		existe, err := uc.locales.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !existe {
			return fmt.Errorf("%w: el local %s no existe", domain.ErrInvalidInput, id)
		}
	}
	return nil
}

// dedupe elimina duplicados preservando el orden de inserción.
func dedupe(ids []string) []string {
	vistos := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := vistos[id]; ok {
			continue
		}
		vistos[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// usuarioToResponse proyecta la entidad sin campos de credencial.
func usuarioToResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	out := &dto.UsuarioResponse{
		ID:                   u.ID,
		Nombre:               u.Nombre,
		Email:                u.Email,
		Telefono:             u.Telefono,
		Rol:                  u.Rol,
		Locales:              u.Locales,
		LocalPrincipal:       u.LocalPrincipal,
		Activo:               u.Activo,
		EnLinea:              u.EnLinea,
		Verificado:           u.Verificado,
		EsAdministradorLocal: u.EsAdministradorLocal,
		UltimoAcceso:         u.UltimoAcceso,
		CreadoPor:            u.CreadoPor,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
	if u.UltimaModificacion != nil {
		out.UltimaModificacion = &dto.ModificacionDTO{
			Usuario: u.UltimaModificacion.Usuario,
			Fecha:   u.UltimaModificacion.Fecha,
		}
	}
	return out
}
