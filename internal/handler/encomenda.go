package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mdesouza/encomendas/internal/domain"
	"github.com/mdesouza/encomendas/internal/validate"
)

// EncomendaHandler serves the four delivery-record operations. Handlers are
// stateless; every unit of work begins and ends within one request.
type EncomendaHandler struct {
	store    domain.EncomendaStore
	validate *validate.Validator
	logger   zerolog.Logger
}

// NewEncomendaHandler creates a new EncomendaHandler instance.
func NewEncomendaHandler(store domain.EncomendaStore, v *validate.Validator, logger zerolog.Logger) *EncomendaHandler {
	return &EncomendaHandler{
		store:    store,
		validate: v,
		logger:   logger,
	}
}

// Create handles POST /encomenda: validate the form, insert, return the
// created record view. A duplicate name is a 409 naming the conflicting
// record.
func (h *EncomendaHandler) Create(c echo.Context) error {
	form, err := h.bindForm(c)
	if err != nil {
		return ErrorResponse(c, err)
	}

	e := form.Encomenda()
	if err := h.store.Insert(c.Request().Context(), e); err != nil {
		h.logFailure(err, "create encomenda failed")
		return ErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.NewEncomendaView(e))
}

// Update handles PUT /encomenda: validate the form, look the record up by
// name, then replace every non-identity field.
func (h *EncomendaHandler) Update(c echo.Context) error {
	form, err := h.bindForm(c)
	if err != nil {
		return ErrorResponse(c, err)
	}

	ctx := c.Request().Context()

	if _, err := h.store.FindByName(ctx, form.Name); err != nil {
		h.logFailure(err, "update lookup failed")
		return ErrorResponse(c, err)
	}

	e, err := h.store.Update(ctx, form.Name, form.Fields())
	if err != nil {
		h.logFailure(err, "update encomenda failed")
		return ErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.NewEncomendaView(e))
}

// ListResponse wraps the ordered record views of GET /listar_encomendas.
type ListResponse struct {
	Encomendas []domain.EncomendaView `json:"encomendas"`
}

// List handles GET /listar_encomendas: all records ordered by name. An empty
// store yields an empty list, never an error.
func (h *EncomendaHandler) List(c echo.Context) error {
	records, err := h.store.ListAllOrderedByName(c.Request().Context())
	if err != nil {
		h.logFailure(err, "list encomendas failed")
		return ErrorResponse(c, err)
	}

	views := make([]domain.EncomendaView, 0, len(records))
	for i := range records {
		views = append(views, domain.NewEncomendaView(&records[i]))
	}

	return c.JSON(http.StatusOK, ListResponse{Encomendas: views})
}

// DeleteResponse confirms a removal with the resolved name.
type DeleteResponse struct {
	Mensagem string `json:"mensagem"`
	Nome     string `json:"nome"`
}

// Delete handles DELETE /encomenda?nome=...: removes the named record. The
// name arrives URL-encoded once and the framework decodes it once; the
// distinction between not-found and removed comes from the rows-affected
// count.
func (h *EncomendaHandler) Delete(c echo.Context) error {
	nome := c.QueryParam("nome")
	if nome == "" {
		return ErrorResponse(c, domain.AddFieldError(nil, "nome", "campo obrigatório"))
	}

	count, err := h.store.DeleteByName(c.Request().Context(), nome)
	if err != nil {
		h.logFailure(err, "delete encomenda failed")
		return ErrorResponse(c, err)
	}

	if count == 0 {
		return ErrorResponse(c, domain.NotFound("encomenda.delete", "encomenda não existente!"))
	}

	return c.JSON(http.StatusOK, DeleteResponse{
		Mensagem: "encomenda removida",
		Nome:     nome,
	})
}

// bindForm parses form-encoded input into the typed request object and runs
// eager validation before any store access.
func (h *EncomendaHandler) bindForm(c echo.Context) (*domain.EncomendaForm, error) {
	var form domain.EncomendaForm
	if err := c.Bind(&form); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return nil, domain.AddFieldError(nil, be.Field, "valor inválido")
		}
		return nil, domain.AddFieldError(nil, "form", "formulário inválido")
	}

	if err := h.validate.Struct("encomenda.form", &form); err != nil {
		return nil, err
	}

	return &form, nil
}

// logFailure records unexpected failures server-side. Expected outcomes
// (conflict, not-found) stay at debug so real storage trouble stands out.
func (h *EncomendaHandler) logFailure(err error, msg string) {
	switch domain.ErrorCode(err) {
	case domain.ECONFLICT, domain.ENOTFOUND:
		h.logger.Debug().Err(err).Msg(msg)
	default:
		h.logger.Error().Err(err).Msg(msg)
	}
}
