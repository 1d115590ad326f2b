package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
)

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL.
type LocalRepo struct {
	db querier
}

// NewLocalRepository construye el adaptador de persistencia para locales.
func NewLocalRepository(pool *pgxpool.Pool) *LocalRepo {
	return &LocalRepo{db: pool}
}

// Create persiste un nuevo local.
func (r *LocalRepo) Create(ctx context.Context, l *entity.Local) error {
	query := `
		INSERT INTO locales (id, nombre, direccion, telefono, email, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.Nombre, l.Direccion, l.Telefono, l.Email, l.Activo, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByID obtiene un local por ID; (nil, nil) si no existe.
func (r *LocalRepo) GetByID(ctx context.Context, id string) (*entity.Local, error) {
	query := `
		SELECT id, nombre, direccion, telefono, email, activo, created_at, updated_at
		FROM locales WHERE id = $1`
	var l entity.Local
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Nombre, &l.Direccion, &l.Telefono, &l.Email, &l.Activo, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local by id: %w", err)
	}
	return &l, nil
}

// List lista locales con paginación.
func (r *LocalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Local, error) {
	query := `
		SELECT id, nombre, direccion, telefono, email, activo, created_at, updated_at
		FROM locales ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Local
	for rows.Next() {
		var l entity.Local
		if err := rows.Scan(&l.ID, &l.Nombre, &l.Direccion, &l.Telefono, &l.Email, &l.Activo, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count total de locales.
func (r *LocalRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM locales`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count locales: %w", err)
	}
	return total, nil
}

// Exists verifica existencia por id sin cargar la fila.
func (r *LocalRepo) Exists(ctx context.Context, id string) (bool, error) {
	var existe bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM locales WHERE id = $1)`, id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists local: %w", err)
	}
	return existe, nil
}
