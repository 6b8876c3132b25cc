package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/mdesouza/encomendas/internal/handler"
	"github.com/mdesouza/encomendas/internal/middleware"
)

// Deps contains the handler dependencies for route registration.
type Deps struct {
	Encomendas *handler.EncomendaHandler
	Endereco   *handler.CEPHandler
	Metrics    *middleware.Metrics
}

// Register wires every route of the service onto e.
func Register(e *echo.Echo, deps Deps) {
	e.GET("/", handler.Home)
	e.GET("/openapi", handler.OpenAPI)

	// Operational endpoints. /metrics should be protected in production via
	// firewall.
	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))

	// Delivery records
	e.POST("/encomenda", deps.Encomendas.Create)
	e.PUT("/encomenda", deps.Encomendas.Update)
	e.GET("/listar_encomendas", deps.Encomendas.List)
	e.DELETE("/encomenda", deps.Encomendas.Delete)

	// Address lookup
	e.GET("/endereco", deps.Endereco.Lookup)
}
