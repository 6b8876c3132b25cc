package domain

import (
	"errors"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"conflict", Conflict("encomenda.insert", "já existente"), ECONFLICT},
		{"not found", NotFound("encomenda.update", "não encontrada"), ENOTFOUND},
		{"storage", Storage(errors.New("boom"), "encomenda.insert", "Erro ao gravar a encomenda."), ESTORAGE},
		{"upstream", Upstream(errors.New("dial tcp"), "cep.lookup", "Erro ao consultar o endereço"), EUPSTREAM},
		{"plain error", errors.New("boom"), EINTERNAL},
		{"wrapped domain error", errors.Join(errors.New("outer"), NotFound("op", "x")), ENOTFOUND},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage_HidesInternalDetail(t *testing.T) {
	const generic = "Erro interno, tente novamente mais tarde."

	if got := ErrorMessage(errors.New("pq: connection refused")); got != generic {
		t.Errorf("plain error message = %q, want %q", got, generic)
	}

	internal := WrapError(errors.New("stack trace"), EINTERNAL, "op", "detailed message")
	if got := ErrorMessage(internal); got != generic {
		t.Errorf("internal error message = %q, want %q", got, generic)
	}

	storage := Storage(errors.New("deadlock detected"), "encomenda.insert", "Erro ao gravar a encomenda.")
	if got := ErrorMessage(storage); got != "Erro ao gravar a encomenda." {
		t.Errorf("storage error message = %q, want the stored generic message", got)
	}
}

func TestWrapError_Nil(t *testing.T) {
	if err := WrapError(nil, ESTORAGE, "op", "msg"); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Storage(cause, "op", "msg")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestAddFieldError_Aggregates(t *testing.T) {
	err := AddFieldError(nil, "name", "campo obrigatório")
	err = AddFieldError(err, "postalCode", "campo obrigatório")

	if !IsValidationError(err) {
		t.Fatal("expected a ValidationError")
	}

	fields := GetValidationFields(err)
	if len(fields) != 2 {
		t.Fatalf("got %d field errors, want 2", len(fields))
	}
	if fields[0].Field != "name" || fields[1].Field != "postalCode" {
		t.Errorf("fields out of order: %+v", fields)
	}
}

func TestGetValidationFields_NonValidationError(t *testing.T) {
	if fields := GetValidationFields(errors.New("boom")); fields != nil {
		t.Errorf("got %v, want nil", fields)
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("plain error should not be a ValidationError")
	}
}
