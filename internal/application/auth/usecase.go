package auth

import (
	"context"
	"time"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/domain"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
	"github.com/tu-usuario/admin-locales/internal/domain/repository"
	"github.com/tu-usuario/admin-locales/pkg/jwt"
	"github.com/tu-usuario/admin-locales/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LockConfig política de bloqueo por intentos fallidos.
type LockConfig struct {
	MaxIntentos    int
	BloqueoMinutos int
}

// AuthUseCase casos de uso de autenticación: login con bloqueo progresivo y
// logout (presencia).
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	hasher   password.Hasher
	jwtCfg   JWTConfig
	lockCfg  LockConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarios repository.UsuarioRepository, hasher password.Hasher, jwtCfg JWTConfig, lockCfg LockConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, hasher: hasher, jwtCfg: jwtCfg, lockCfg: lockCfg}
}

// Login verifica email/password, aplica la política de bloqueo, marca
// presencia y último acceso, y genera el JWT con id y rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarios.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Mismo error que password incorrecto: no filtrar qué emails existen.
		return nil, domain.ErrCredencialesInvalidas
	}

	ahora := time.Now()
	if u.BloqueadoHasta != nil && ahora.Before(*u.BloqueadoHasta) {
		return nil, domain.ErrCuentaBloqueada
	}

	if err := uc.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		u.IntentosFallidos++
		if uc.lockCfg.MaxIntentos > 0 && u.IntentosFallidos >= uc.lockCfg.MaxIntentos {
			hasta := ahora.Add(time.Duration(uc.lockCfg.BloqueoMinutos) * time.Minute)
			u.BloqueadoHasta = &hasta
			u.IntentosFallidos = 0
		}
		u.UpdatedAt = ahora
		_ = uc.usuarios.Update(ctx, u)
		return nil, domain.ErrCredencialesInvalidas
	}

	if !u.Activo {
		return nil, domain.ErrCuentaInactiva
	}

	u.IntentosFallidos = 0
	u.BloqueadoHasta = nil
	u.EnLinea = true
	u.UltimoAcceso = &ahora
	u.UpdatedAt = ahora
	if err := uc.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *usuarioToResponse(u)}, nil
}

// Logout marca al usuario fuera de línea.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	u, err := uc.usuarios.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNotFound
	}
	u.EnLinea = false
	u.UpdatedAt = time.Now()
	return uc.usuarios.Update(ctx, u)
}

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
