package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/pedido"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/restaurante-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Lista de tokens revocados: Redis si está configurado, si no logout no revoca.
	var revoker auth.Revoker = infraredis.NoopDenylist{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		revoker = infraredis.NewTokenDenylist(client)
	} else {
		log.Warn().Msg("REDIS_URL vacío: logout no revoca tokens")
	}

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	userRepo := postgres.NewUserRepository(pool)
	platoRepo := postgres.NewPlatoRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gate := access.NewGate(access.DefaultPolicy())
	m := metrics.New()
	tickets := infrapdf.NewTicketGenerator(cfg.App.RestaurantName)

	authUC := auth.NewAuthUseCase(userRepo, codec, revoker, log.Zerolog())
	pedidoUC := pedido.NewUseCase(txRunner, pedidoRepo, gate, m, tickets, log.Zerolog())
	platoUC := usecase.NewPlatoUseCase(platoRepo, log.Zerolog())
	userUC := usecase.NewUserUseCase(userRepo, log.Zerolog())

	errHandler := httpRouter.NewErrorHandler(log.Component("http"))
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errHandler,
	})
	// El logger envuelve a recover: un panic llega como error y se registra con status 500.
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m, errHandler))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en /docs si existe el archivo generado.
	if cfg.HTTP.DocsPath != "" {
		if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsPath,
				Path:     "docs",
				Title:    cfg.App.Name,
			}))
		} else {
			log.Debug().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:   authUC,
		PedidoUC: pedidoUC,
		PlatoUC:  platoUC,
		UserUC:   userUC,
		Gate:     gate,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
