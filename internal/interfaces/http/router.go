package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/admin-locales/internal/application/auth"
	"github.com/tu-usuario/admin-locales/internal/application/usecase"
	"github.com/tu-usuario/admin-locales/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UsuarioUC      *usecase.UsuarioUseCase
	LocalUC        *usecase.LocalUseCase
	AsignacionUC   *usecase.AsignacionUseCase
	EstadisticasUC *usecase.EstadisticasUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UsuarioUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Bootstrap del primer superAdmin (público; rechaza si ya existe alguno)
	api.Post("/setup/superadmin", authHandler.BootstrapSuperAdmin)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)

	// Usuarios (protegido; la autorización fina la decide la capa de políticas)
	usuarios := protected.Group("/usuarios", RequireRole(entity.RolAdmin, entity.RolSuperAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)
	usuarios.Put("/:id/password", usuarioHandler.ResetPassword)
	usuarios.Put("/:id/estado", usuarioHandler.CambiarEstado)

	// Asignación de locales a administradores (solo superAdmin)
	asignacionHandler := NewAsignacionHandler(deps.UsuarioUC, deps.AsignacionUC)
	asignaciones := usuarios.Group("/:id/locales", RequireRole(entity.RolSuperAdmin))
	asignaciones.Post("/:localId", asignacionHandler.Asignar)
	asignaciones.Delete("/:localId", asignacionHandler.Quitar)
	asignaciones.Put("/:localId/principal", asignacionHandler.DefinirPrincipal)

	// Locales (protegido; creación restringida por políticas)
	locales := protected.Group("/locales")
	localHandler := NewLocalHandler(deps.UsuarioUC, deps.LocalUC)
	locales.Get("/", localHandler.List)
	locales.Get("/:id", localHandler.GetByID)
	locales.Post("/", RequireRole(entity.RolSuperAdmin), localHandler.Create)

	// Estadísticas (admin ve las propias, superAdmin cualquiera)
	estadisticas := protected.Group("/estadisticas", RequireRole(entity.RolAdmin, entity.RolSuperAdmin))
	estadisticasHandler := NewEstadisticasHandler(deps.UsuarioUC, deps.EstadisticasUC)
	estadisticas.Get("/resumen", estadisticasHandler.Resumen)
	estadisticas.Get("/detalle", estadisticasHandler.Detalle)
	estadisticas.Get("/reporte", estadisticasHandler.Reporte)
}
