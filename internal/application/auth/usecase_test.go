package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admin-locales/internal/application/auth"
	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/admin-locales/pkg/jwt"
)

// repoUnUsuario es el doble mínimo para login/logout: un único usuario en
// memoria, actualizado in place.
type repoUnUsuario struct {
	u *entity.Usuario
}

var _ repository.UsuarioRepository = (*repoUnUsuario)(nil)

func (r *repoUnUsuario) Create(_ context.Context, u *entity.Usuario) error { r.u = u; return nil }

func (r *repoUnUsuario) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	if r.u != nil && r.u.ID == id {
		c := *r.u
		return &c, nil
	}
	return nil, nil
}

func (r *repoUnUsuario) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	if r.u != nil && r.u.Email == email {
		c := *r.u
		return &c, nil
	}
	return nil, nil
}

func (r *repoUnUsuario) List(context.Context, repository.UsuarioFilter, int, int) ([]*entity.Usuario, error) {
	return nil, nil
}
func (r *repoUnUsuario) Count(context.Context, repository.UsuarioFilter) (int, error) {
	return 0, nil
}
func (r *repoUnUsuario) Update(_ context.Context, u *entity.Usuario) error {
	c := *u
	r.u = &c
	return nil
}
func (r *repoUnUsuario) CountSuperAdmins(context.Context, bool) (int, error) { return 0, nil }
func (r *repoUnUsuario) CountAdminsActivosDeLocal(context.Context, string) (int, error) {
	return 0, nil
}

// hasher de texto plano para no pagar bcrypt en cada caso.
type hasherPlano struct{}

func (hasherPlano) Hash(plano string) (string, error) { return "hash:" + plano, nil }
func (hasherPlano) Compare(hash, plano string) error {
	if hash != "hash:"+plano {
		return errors.New("credencial incorrecta")
	}
	return nil
}

const testSecret = "secreto-de-pruebas"

func nuevoAuth(u *entity.Usuario, maxIntentos int) (*auth.AuthUseCase, *repoUnUsuario) {
	repo := &repoUnUsuario{u: u}
	uc := auth.NewAuthUseCase(repo, hasherPlano{},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
		auth.LockConfig{MaxIntentos: maxIntentos, BloqueoMinutos: 15},
	)
	return uc, repo
}

func usuarioActivo() *entity.Usuario {
	return &entity.Usuario{
		ID:           "u-1",
		Nombre:       "Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash:secreto123",
		Rol:          entity.RolAdmin,
		Locales:      []string{"l1"},
		Activo:       true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc, repo := nuevoAuth(usuarioActivo(), 5)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, rol, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, entity.RolAdmin, rol, "el token lleva id y rol")

	assert.True(t, repo.u.EnLinea, "login marca presencia")
	assert.NotNil(t, repo.u.UltimoAcceso)
	assert.Zero(t, repo.u.IntentosFallidos)
}

func TestLogin_EmailDesconocidoNoFiltra(t *testing.T) {
	uc, _ := nuevoAuth(usuarioActivo(), 5)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas,
		"email inexistente y password incorrecto devuelven el mismo error")
}

func TestLogin_PasswordIncorrectoIncrementaIntentos(t *testing.T) {
	uc, repo := nuevoAuth(usuarioActivo(), 5)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	assert.Equal(t, 1, repo.u.IntentosFallidos)
}

func TestLogin_BloqueoTrasAgotarIntentos(t *testing.T) {
	uc, repo := nuevoAuth(usuarioActivo(), 3)

	for i := 0; i < 3; i++ {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "mala"})
		assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	}
	require.NotNil(t, repo.u.BloqueadoHasta, "al tercer fallo la cuenta queda bloqueada")
	assert.True(t, repo.u.BloqueadoHasta.After(time.Now()))

	// incluso con la contraseña correcta, bloqueado es bloqueado
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrCuentaBloqueada)
}

func TestLogin_BloqueoExpiradoPermiteEntrar(t *testing.T) {
	u := usuarioActivo()
	pasado := time.Now().Add(-time.Minute)
	u.BloqueadoHasta = &pasado
	uc, repo := nuevoAuth(u, 5)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Nil(t, repo.u.BloqueadoHasta, "el login exitoso limpia el bloqueo")
}

func TestLogin_CuentaInactiva(t *testing.T) {
	u := usuarioActivo()
	u.Activo = false
	uc, _ := nuevoAuth(u, 5)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrCuentaInactiva,
		"credencial correcta pero cuenta deshabilitada")
}

func TestLogin_RespuestaSinCredenciales(t *testing.T) {
	uc, _ := nuevoAuth(usuarioActivo(), 5)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.Usuario.ID)
	assert.Equal(t, "ana@x.com", out.Usuario.Email)
}

func TestLogout_MarcaFueraDeLinea(t *testing.T) {
	u := usuarioActivo()
	u.EnLinea = true
	uc, repo := nuevoAuth(u, 5)

	require.NoError(t, uc.Logout(context.Background(), "u-1"))
	assert.False(t, repo.u.EnLinea)
}

func TestLogout_UsuarioDesconocido(t *testing.T) {
	uc, _ := nuevoAuth(nil, 5)
	err := uc.Logout(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
