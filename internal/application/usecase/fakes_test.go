package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	"github.com/tu-usuario/admin-locales/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para los casos de uso. Imitan el contrato del puerto:
// GetByID/GetByEmail devuelven (nil, nil) cuando no hay fila y las entidades
// salen clonadas para que mutar el resultado no toque el almacén.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	orden []string
	porID map[string]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{porID: make(map[string]*entity.Usuario)}
}

func clonarUsuario(u *entity.Usuario) *entity.Usuario {
	c := *u
	c.Locales = append([]string(nil), u.Locales...)
	if u.UltimaModificacion != nil {
		m := *u.UltimaModificacion
		c.UltimaModificacion = &m
	}
	return &c
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.orden = append(r.orden, u.ID)
	r.porID[u.ID] = clonarUsuario(u)
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarUsuario(u), nil
}

func (r *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, id := range r.orden {
		if strings.EqualFold(r.porID[id].Email, email) {
			return clonarUsuario(r.porID[id]), nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) coincide(u *entity.Usuario, f repository.UsuarioFilter) bool {
	if f.Rol != "" && u.Rol != f.Rol {
		return false
	}
	if f.Activo != nil && u.Activo != *f.Activo {
		return false
	}
	if f.Local != "" && !u.TieneLocal(f.Local) {
		return false
	}
	if f.Busqueda != "" {
		b := strings.ToLower(f.Busqueda)
		if !strings.Contains(strings.ToLower(u.Nombre), b) && !strings.Contains(strings.ToLower(u.Email), b) {
			return false
		}
	}
	if len(f.EnLocales) > 0 {
		comparte := false
		for _, l := range f.EnLocales {
			if u.TieneLocal(l) {
				comparte = true
				break
			}
		}
		if !comparte {
			return false
		}
	}
	for _, rol := range f.ExcluirRoles {
		if u.Rol == rol {
			return false
		}
	}
	return true
}

func (r *fakeUsuarioRepo) List(_ context.Context, f repository.UsuarioFilter, limit, offset int) ([]*entity.Usuario, error) {
	var todos []*entity.Usuario
	for _, id := range r.orden {
		if r.coincide(r.porID[id], f) {
			todos = append(todos, clonarUsuario(r.porID[id]))
		}
	}
	if offset >= len(todos) {
		return nil, nil
	}
	fin := offset + limit
	if fin > len(todos) {
		fin = len(todos)
	}
	return todos[offset:fin], nil
}

func (r *fakeUsuarioRepo) Count(_ context.Context, f repository.UsuarioFilter) (int, error) {
	n := 0
	for _, id := range r.orden {
		if r.coincide(r.porID[id], f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.porID[u.ID] = clonarUsuario(u)
	return nil
}

func (r *fakeUsuarioRepo) CountSuperAdmins(_ context.Context, soloActivos bool) (int, error) {
	n := 0
	for _, u := range r.porID {
		if u.Rol != entity.RolSuperAdmin {
			continue
		}
		if soloActivos && !u.Activo {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeUsuarioRepo) CountAdminsActivosDeLocal(_ context.Context, localID string) (int, error) {
	n := 0
	for _, u := range r.porID {
		if u.Rol == entity.RolAdmin && u.Activo && u.TieneLocal(localID) {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner ejecuta el cierre directamente sobre el mismo repo: los tests
// son secuenciales, el aislamiento transaccional no aporta nada aquí.
type fakeTxRunner struct {
	usuarios *fakeUsuarioRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(usuarios repository.UsuarioRepository) error) error {
	return fn(t.usuarios)
}

type fakeLocalRepo struct {
	porID map[string]*entity.Local
}

func newFakeLocalRepo(ids ...string) *fakeLocalRepo {
	r := &fakeLocalRepo{porID: make(map[string]*entity.Local)}
	for _, id := range ids {
		r.porID[id] = &entity.Local{ID: id, Nombre: "Local " + id, Activo: true, CreatedAt: time.Now()}
	}
	return r
}

func (r *fakeLocalRepo) Create(_ context.Context, l *entity.Local) error {
	r.porID[l.ID] = l
	return nil
}

func (r *fakeLocalRepo) GetByID(_ context.Context, id string) (*entity.Local, error) {
	l, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (r *fakeLocalRepo) List(_ context.Context, limit, offset int) ([]*entity.Local, error) {
	var out []*entity.Local
	for _, l := range r.porID {
		out = append(out, l)
	}
	if offset >= len(out) {
		return nil, nil
	}
	fin := offset + limit
	if fin > len(out) {
		fin = len(out)
	}
	return out[offset:fin], nil
}

func (r *fakeLocalRepo) Count(_ context.Context) (int, error) {
	return len(r.porID), nil
}

func (r *fakeLocalRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.porID[id]
	return ok, nil
}

// hashPlano evita el costo de bcrypt en los tests de casos de uso.
type hashPlano struct{}

func (hashPlano) Hash(plano string) (string, error) { return "hash:" + plano, nil }
func (hashPlano) Compare(hash, plano string) error {
	if hash != "hash:"+plano {
		return errCredencial
	}
	return nil
}

var errCredencial = &credencialError{}

type credencialError struct{}

func (*credencialError) Error() string { return "credencial incorrecta" }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}
