// seed crea el usuario administrador inicial y, opcionalmente, un menú de ejemplo.
//
// Uso: go run ./cmd/seed --email admin@asiawok.com --password secreto --menu
// La conexión a PostgreSQL se toma de las mismas variables de entorno que la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

type platoSeed struct {
	nombre    string
	precio    string
	categoria string
}

var menu = []platoSeed{
	{"Arroz chaufa", "12.50", "wok"},
	{"Tallarín saltado", "14.00", "wok"},
	{"Chancho asado", "18.00", "wok"},
	{"Sopa wantán", "8.00", "sopas"},
	{"Wantán frito", "6.50", "entradas"},
	{"Chicha morada", "3.50", "bebidas"},
}

func main() {
	email := flag.String("email", "admin@asiawok.com", "email del administrador")
	password := flag.String("password", "", "contraseña del administrador (requerida)")
	nombre := flag.String("nombre", "Administrador", "nombre del administrador")
	withMenu := flag.Bool("menu", false, "crear platos de ejemplo")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "--password es requerido")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), log.Zerolog())
	admin, err := users.Create(ctx, dto.CreateUserRequest{
		Email:    *email,
		Password: *password,
		Nombre:   *nombre,
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("administrador ya existe, se omite")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Int64("id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
	}

	if !*withMenu {
		return
	}
	platos := usecase.NewPlatoUseCase(postgres.NewPlatoRepository(pool), log.Zerolog())
	creados := 0
	for _, p := range menu {
		_, err := platos.Create(ctx, dto.CreatePlatoRequest{
			Nombre:    p.nombre,
			Precio:    decimal.RequireFromString(p.precio),
			Categoria: p.categoria,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("plato", p.nombre).Msg("crear plato")
		}
		creados++
	}
	log.Info().Int("creados", creados).Int("total", len(menu)).Msg("menú sembrado")
}
