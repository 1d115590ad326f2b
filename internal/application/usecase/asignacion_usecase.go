package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/policy"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	"github.com/tu-usuario/admin-locales/pkg/logger"
)

// AsignacionUseCase gestiona los locales de un usuario con rol admin:
// asignar, quitar y designar el principal. El conjunto preserva el orden de
// inserción — el primero asignado es el principal por defecto y, al quitar el
// principal, lo hereda el nuevo primero.
type AsignacionUseCase struct {
	usuarios repository.UsuarioRepository
	locales  repository.LocalRepository
	log      *logger.Logger
}

// NewAsignacionUseCase construye el caso de uso.
func NewAsignacionUseCase(usuarios repository.UsuarioRepository, locales repository.LocalRepository, log *logger.Logger) *AsignacionUseCase {
	return &AsignacionUseCase{usuarios: usuarios, locales: locales, log: log}
}

// resolverAdmin carga el objetivo y verifica permisos y rol.
func (uc *AsignacionUseCase) resolverAdmin(ctx context.Context, actor policy.Actor, adminID string) (*entity.Usuario, error) {
	if !policy.PuedeGestionarLocales(actor) {
		return nil, domain.ErrForbidden
	}
	objetivo, err := uc.usuarios.GetByID(ctx, adminID)
	if err != nil {
		uc.log.Operacion("asignacion_locales", actor.ID, adminID, err)
		return nil, err
	}
	if objetivo == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if objetivo.Rol != entity.RolAdmin {
		return nil, fmt.Errorf("%w: solo un admin tiene locales asignados", domain.ErrInvalidInput)
	}
	return objetivo, nil
}

// AsignarLocal añade un local al final del conjunto del admin. El primero
// (y único) asignado queda como principal.
func (uc *AsignacionUseCase) AsignarLocal(ctx context.Context, actor policy.Actor, adminID, localID string) (*dto.UsuarioResponse, error) {
	admin, err := uc.resolverAdmin(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}
	existe, err := uc.locales.Exists(ctx, localID)
	if err != nil {
		uc.log.Operacion("asignar_local", actor.ID, adminID, err)
		return nil, err
	}
	if !existe {
		return nil, fmt.Errorf("%w: el local %s no existe", domain.ErrInvalidInput, localID)
	}
	if admin.TieneLocal(localID) {
		return nil, domain.ErrLocalYaAsignado
	}

	admin.Locales = append(admin.Locales, localID)
	if len(admin.Locales) == 1 {
		admin.LocalPrincipal = localID
	}
	admin.RecalcularDerivados()
	admin.Estampar(actor.ID, time.Now())

	if err := uc.usuarios.Update(ctx, admin); err != nil {
		uc.log.Operacion("asignar_local", actor.ID, adminID, err)
		return nil, err
	}
	return usuarioToResponse(admin), nil
}

// QuitarLocal elimina un local del conjunto. Un admin conserva siempre al
// menos uno; si el quitado era el principal, el nuevo primero lo hereda.
func (uc *AsignacionUseCase) QuitarLocal(ctx context.Context, actor policy.Actor, adminID, localID string) (*dto.UsuarioResponse, error) {
	admin, err := uc.resolverAdmin(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.TieneLocal(localID) {
		return nil, domain.ErrLocalNoAsignado
	}
	if policy.DejariaAdminSinLocales(admin.Rol, len(admin.Locales)-1) {
		return nil, fmt.Errorf("%w: es el único local del admin", domain.ErrInvariante)
	}

	restantes := make([]string, 0, len(admin.Locales)-1)
	for _, l := range admin.Locales {
		if l != localID {
			restantes = append(restantes, l)
		}
	}
	admin.Locales = restantes
	if admin.LocalPrincipal == localID {
		admin.LocalPrincipal = restantes[0]
	}
	admin.RecalcularDerivados()
	admin.Estampar(actor.ID, time.Now())

	if err := uc.usuarios.Update(ctx, admin); err != nil {
		uc.log.Operacion("quitar_local", actor.ID, adminID, err)
		return nil, err
	}
	return usuarioToResponse(admin), nil
}

// DefinirLocalPrincipal designa como principal un local ya asignado.
func (uc *AsignacionUseCase) DefinirLocalPrincipal(ctx context.Context, actor policy.Actor, adminID, localID string) (*dto.UsuarioResponse, error) {
	admin, err := uc.resolverAdmin(ctx, actor, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.TieneLocal(localID) {
		return nil, domain.ErrLocalNoAsignado
	}

	admin.LocalPrincipal = localID
	admin.Estampar(actor.ID, time.Now())

	if err := uc.usuarios.Update(ctx, admin); err != nil {
		uc.log.Operacion("definir_local_principal", actor.ID, adminID, err)
		return nil, err
	}
	return usuarioToResponse(admin), nil
}
