// seed crea el primer superAdmin con el sistema vacío. Falla si ya existe
// alguno: el arranque solo puede ocurrir una vez.
//
// Uso: go run ./cmd/seed -nombre "Admin" -email admin@ejemplo.com -password secreto
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tu-usuario/admin-locales/internal/application/dto"
	"github.com/tu-usuario/admin-locales/internal/application/usecase"
	"github.com/tu-usuario/admin-locales/internal/infrastructure/postgres"
	"github.com/tu-usuario/admin-locales/pkg/config"
	"github.com/tu-usuario/admin-locales/pkg/logger"
	"github.com/tu-usuario/admin-locales/pkg/password"
)

func main() {
	var nombre, email, pass string
	flag.StringVar(&nombre, "nombre", "", "nombre del superAdmin inicial")
	flag.StringVar(&email, "email", "", "email del superAdmin inicial")
	flag.StringVar(&pass, "password", "", "contraseña del superAdmin inicial")
	flag.Parse()

	if nombre == "" || email == "" || pass == "" {
		fmt.Fprintln(os.Stderr, "uso: seed -nombre <nombre> -email <email> -password <contraseña>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	localRepo := postgres.NewLocalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	uc := usecase.NewUsuarioUseCase(usuarioRepo, localRepo, txRunner, password.NewBcryptHasher(), log)

	out, err := uc.CrearPrimerSuperAdmin(ctx, dto.BootstrapSuperAdminRequest{
		Nombre:   nombre,
		Email:    email,
		Password: pass,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear superAdmin inicial: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("superAdmin creado: %s <%s>\n", out.Nombre, out.Email)
}
