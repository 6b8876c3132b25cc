package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home redirects the root path to the API index.
func Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/openapi")
}

// openAPIIndex is served where the original project exposed its generated
// documentation. Documentation generation is out of scope, so a static
// endpoint index stands in.
var openAPIIndex = map[string]interface{}{
	"name":    "encomendas",
	"version": "1.0.0",
	"endpoints": []map[string]string{
		{"method": "POST", "path": "/encomenda", "description": "cadastra nova encomenda"},
		{"method": "PUT", "path": "/encomenda", "description": "atualiza uma encomenda existente"},
		{"method": "GET", "path": "/listar_encomendas", "description": "lista as encomendas ordenadas por nome"},
		{"method": "DELETE", "path": "/encomenda", "description": "remove uma encomenda pelo nome"},
		{"method": "GET", "path": "/endereco", "description": "consulta endereço a partir do CEP"},
	},
}

// OpenAPI serves the static API index.
func OpenAPI(c echo.Context) error {
	return c.JSON(http.StatusOK, openAPIIndex)
}

// Health is the liveness endpoint.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
