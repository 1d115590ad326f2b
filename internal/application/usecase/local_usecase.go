package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/policy"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
)

// LocalUseCase CRUD mínimo de sedes. El ciclo de vida completo de los
// locales lo gobierna otro sistema; aquí basta el alta y la consulta.
type LocalUseCase struct {
	locales repository.LocalRepository
}

// NewLocalUseCase construye el caso de uso.
func NewLocalUseCase(locales repository.LocalRepository) *LocalUseCase {
	return &LocalUseCase{locales: locales}
}

// Crear registra una sede nueva (solo superAdmin).
func (uc *LocalUseCase) Crear(ctx context.Context, actor policy.Actor, req dto.CreateLocalRequest) (*dto.LocalResponse, error) {
	if !policy.PuedeGestionarLocales(actor) {
		return nil, domain.ErrForbidden
	}
	ahora := time.Now()
	nuevo := &entity.Local{
		ID:        uuid.New().String(),
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Activo:    true,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	if err := uc.locales.Create(ctx, nuevo); err != nil {
		return nil, err
	}
	return localToResponse(nuevo), nil
}

// Obtener devuelve un local por id.
func (uc *LocalUseCase) Obtener(ctx context.Context, id string) (*dto.LocalResponse, error) {
	l, err := uc.locales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrLocalNotFound
	}
	return localToResponse(l), nil
}

// Listar devuelve una página de locales.
func (uc *LocalUseCase) Listar(ctx context.Context, page dto.PageRequest) (*dto.LocalListResponse, error) {
	page.DefaultPage()
	total, err := uc.locales.Count(ctx)
	if err != nil {
		return nil, err
	}
	lista, err := uc.locales.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.LocalListResponse{
		Locales:    make([]dto.LocalResponse, 0, len(lista)),
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}
	for _, l := range lista {
		out.Locales = append(out.Locales, *localToResponse(l))
	}
	return out, nil
}

func localToResponse(l *entity.Local) *dto.LocalResponse {
	if l == nil {
		return nil
	}
	return &dto.LocalResponse{
		ID:        l.ID,
		Nombre:    l.Nombre,
		Direccion: l.Direccion,
		Telefono:  l.Telefono,
		Email:     l.Email,
		Activo:    l.Activo,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
