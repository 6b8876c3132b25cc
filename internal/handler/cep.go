package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mdesouza/encomendas/internal/cep"
	"github.com/mdesouza/encomendas/internal/domain"
)

// CEPHandler proxies postal-code lookups to the external address service.
type CEPHandler struct {
	resolver cep.Resolver
	logger   zerolog.Logger
}

// NewCEPHandler creates a new CEPHandler instance.
func NewCEPHandler(resolver cep.Resolver, logger zerolog.Logger) *CEPHandler {
	return &CEPHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Lookup handles GET /endereco?cep=...: resolves the code into a structured
// address view. Upstream trouble is a 400 with a generic message, an
// explicitly unknown code a 404.
func (h *CEPHandler) Lookup(c echo.Context) error {
	code := c.QueryParam("cep")
	if code == "" {
		return ErrorResponse(c, domain.AddFieldError(nil, "cep", "campo obrigatório"))
	}

	endereco, err := h.resolver.Lookup(c.Request().Context(), code)
	if err != nil {
		if domain.IsCode(err, domain.EUPSTREAM) {
			h.logger.Error().Err(err).Str("cep", code).Msg("address lookup failed")
		}
		return ErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, endereco)
}
