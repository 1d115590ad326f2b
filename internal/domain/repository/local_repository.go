package repository

import (
	"context"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
)

// LocalRepository define el puerto de persistencia para Local. El ciclo de
// vida de los locales lo gobierna otro sistema; aquí el núcleo valida
// existencia y mantiene un CRUD mínimo.
type LocalRepository interface {
	Create(ctx context.Context, l *entity.Local) error
	GetByID(ctx context.Context, id string) (*entity.Local, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Local, error)
	Count(ctx context.Context) (int, error)
	// Exists verifica existencia por id sin cargar la fila completa.
	Exists(ctx context.Context, id string) (bool, error)
}
