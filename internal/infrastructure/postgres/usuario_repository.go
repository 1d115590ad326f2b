package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// columnas en el orden que esperan los scans.
const usuarioColumns = `id, nombre, email, password_hash, telefono, rol, locales, local_principal,
	activo, en_linea, verificado, es_administrador_local, intentos_fallidos, bloqueado_hasta,
	token_reset, token_reset_expira, ultimo_acceso, creado_por, modificado_por, modificado_en,
	created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
// El conjunto de locales se guarda como TEXT[]: el orden del array es el
// orden de inserción, del que depende la semántica de "primero = principal".
type UsuarioRepo struct {
	db querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{db: pool}
}

// newUsuarioRepositoryTx ata el repositorio a una transacción en curso.
func newUsuarioRepositoryTx(tx pgx.Tx) *UsuarioRepo {
	return &UsuarioRepo{db: tx}
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	modPor, modEn := modificacionCols(u)
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Nombre, u.Email, u.PasswordHash, u.Telefono, u.Rol, u.Locales, u.LocalPrincipal,
		u.Activo, u.EnLinea, u.Verificado, u.EsAdministradorLocal, u.IntentosFallidos, u.BloqueadoHasta,
		u.TokenReset, u.TokenResetExpira, u.UltimoAcceso, u.CreadoPor, modPor, modEn,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	u, err := scanUsuario(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (comparación exacta).
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	// El email es único sin distinguir mayúsculas (índice sobre lower(email)).
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE lower(email) = lower($1) LIMIT 1`
	u, err := scanUsuario(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// List lista usuarios filtrados con paginación, más recientes primero.
func (r *UsuarioRepo) List(ctx context.Context, f repository.UsuarioFilter, limit, offset int) ([]*entity.Usuario, error) {
	where, args := buildUsuarioWhere(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+usuarioColumns+` FROM usuarios %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuarioRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count cuenta usuarios bajo el mismo filtro que List.
func (r *UsuarioRepo) Count(ctx context.Context, f repository.UsuarioFilter) (int, error) {
	where, args := buildUsuarioWhere(f)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count usuarios: %w", err)
	}
	return total, nil
}

// Update actualiza un usuario completo (la entidad es la fuente de verdad).
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET
			nombre = $2, email = $3, password_hash = $4, telefono = $5, rol = $6,
			locales = $7, local_principal = $8, activo = $9, en_linea = $10,
			verificado = $11, es_administrador_local = $12, intentos_fallidos = $13,
			bloqueado_hasta = $14, token_reset = $15, token_reset_expira = $16,
			ultimo_acceso = $17, modificado_por = $18, modificado_en = $19, updated_at = $20
		WHERE id = $1`
	modPor, modEn := modificacionCols(u)
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Nombre, u.Email, u.PasswordHash, u.Telefono, u.Rol,
		u.Locales, u.LocalPrincipal, u.Activo, u.EnLinea,
		u.Verificado, u.EsAdministradorLocal, u.IntentosFallidos,
		u.BloqueadoHasta, u.TokenReset, u.TokenResetExpira,
		u.UltimoAcceso, modPor, modEn, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// CountSuperAdmins cuenta superAdmins; con soloActivos incluye solo activos.
func (r *UsuarioRepo) CountSuperAdmins(ctx context.Context, soloActivos bool) (int, error) {
	query := `SELECT COUNT(*) FROM usuarios WHERE rol = $1`
	if soloActivos {
		query += ` AND activo`
	}
	var total int
	if err := r.db.QueryRow(ctx, query, entity.RolSuperAdmin).Scan(&total); err != nil {
		return 0, fmt.Errorf("count superadmins: %w", err)
	}
	return total, nil
}

// CountAdminsActivosDeLocal cuenta admins activos asignados al local.
func (r *UsuarioRepo) CountAdminsActivosDeLocal(ctx context.Context, localID string) (int, error) {
	query := `SELECT COUNT(*) FROM usuarios WHERE rol = $1 AND activo AND $2 = ANY(locales)`
	var total int
	if err := r.db.QueryRow(ctx, query, entity.RolAdmin, localID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count admins de local: %w", err)
	}
	return total, nil
}

// buildUsuarioWhere construye la cláusula WHERE del filtro con args
// numerados. El alcance del actor viaja aquí: la restricción se resuelve en
// la consulta, no post-filtrando en memoria.
func buildUsuarioWhere(f repository.UsuarioFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, vals ...any) {
		for _, v := range vals {
			args = append(args, v)
			cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		conds = append(conds, cond)
	}

	if f.Rol != "" {
		add("rol = ?", f.Rol)
	}
	if f.Activo != nil {
		add("activo = ?", *f.Activo)
	}
	if f.Local != "" {
		add("? = ANY(locales)", f.Local)
	}
	if len(f.EnLocales) > 0 {
		add("locales && ?", f.EnLocales)
	}
	if len(f.ExcluirRoles) > 0 {
		add("NOT (rol = ANY(?))", f.ExcluirRoles)
	}
	if f.Busqueda != "" {
		patron := "%" + normalizarBusqueda(f.Busqueda) + "%"
		add(`(lower(translate(nombre, 'áéíóúüñÁÉÍÓÚÜÑ', 'aeiouunAEIOUUN')) LIKE ? OR lower(email) LIKE ?)`,
			patron, patron)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func modificacionCols(u *entity.Usuario) (*string, *time.Time) {
	if u.UltimaModificacion == nil {
		return nil, nil
	}
	return &u.UltimaModificacion.Usuario, &u.UltimaModificacion.Fecha
}

// scanUsuario para QueryRow: (nil, nil) si no hay fila.
func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	u, err := scanUsuarioRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUsuarioRow(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	var modPor *string
	var modEn *time.Time
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Telefono, &u.Rol, &u.Locales, &u.LocalPrincipal,
		&u.Activo, &u.EnLinea, &u.Verificado, &u.EsAdministradorLocal, &u.IntentosFallidos, &u.BloqueadoHasta,
		&u.TokenReset, &u.TokenResetExpira, &u.UltimoAcceso, &u.CreadoPor, &modPor, &modEn,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if modEn != nil {
		u.UltimaModificacion = &entity.Modificacion{Fecha: *modEn}
		if modPor != nil {
			u.UltimaModificacion.Usuario = *modPor
		}
	}
	return &u, nil
}
