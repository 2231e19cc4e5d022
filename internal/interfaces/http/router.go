package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/pedido"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	PedidoUC *pedido.UseCase
	PlatoUC  *usecase.PlatoUseCase
	UserUC   *usecase.UserUseCase
	Gate     *access.Gate
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	validate := NewValidator()
	authMW := AuthMiddleware(deps.AuthUC)
	can := func(op access.Operation) fiber.Handler { return RequireOperation(deps.Gate, op) }

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, validate)
	authGroup := app.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)
	authGroup.Post("/logout", authMW, authHandler.Logout)

	// Pedidos. /pendientes antes de /:id.
	pedidoHandler := NewPedidoHandler(deps.PedidoUC, validate)
	pedidos := app.Group("/pedidos", authMW)
	pedidos.Post("/", can(access.PedidoCreate), pedidoHandler.Create)
	pedidos.Get("/", can(access.PedidoRead), pedidoHandler.List)
	pedidos.Get("/pendientes", can(access.PedidoPending), pedidoHandler.Pending)
	pedidos.Get("/:id", can(access.PedidoRead), pedidoHandler.GetByID)
	pedidos.Get("/:id/ticket", can(access.PedidoTicket), pedidoHandler.Ticket)
	pedidos.Put("/:id", can(access.PedidoUpdate), pedidoHandler.Update)
	pedidos.Delete("/:id", can(access.PedidoDelete), pedidoHandler.Delete)

	// Platos
	platoHandler := NewPlatoHandler(deps.PlatoUC, validate)
	platos := app.Group("/platos", authMW)
	platos.Post("/", can(access.PlatoWrite), platoHandler.Create)
	platos.Get("/", can(access.PlatoRead), platoHandler.List)
	platos.Get("/:id", can(access.PlatoRead), platoHandler.GetByID)
	platos.Put("/:id", can(access.PlatoWrite), platoHandler.Update)
	platos.Delete("/:id", can(access.PlatoDelete), platoHandler.Delete)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC, validate)
	users := app.Group("/users", authMW, can(access.UserManage))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
