package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdesouza/encomendas/internal/domain"
)

// ErrorBody is the JSON shape of every failure response. Erros is only
// present on validation failures.
type ErrorBody struct {
	Mensagem string              `json:"mensagem"`
	Erros    []domain.FieldError `json:"erros,omitempty"`
}

// ErrorCodeToHTTPStatus maps a domain error code to an HTTP status code.
// Storage and upstream failures deliberately map to 400 with a generic
// message rather than 500.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EINVALID, domain.ESTORAGE, domain.EUPSTREAM:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse converts err into the structured JSON failure body. A
// ValidationError renders as 422 with per-field detail; everything else maps
// through the error code. Internal detail never reaches the client.
func ErrorResponse(c echo.Context, err error) error {
	if domain.IsValidationError(err) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorBody{
			Mensagem: "Erro de validação",
			Erros:    domain.GetValidationFields(err),
		})
	}

	return c.JSON(ErrorCodeToHTTPStatus(domain.ErrorCode(err)), ErrorBody{
		Mensagem: domain.ErrorMessage(err),
	})
}
