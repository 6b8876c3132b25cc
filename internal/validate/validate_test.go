package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdesouza/encomendas/internal/domain"
)

func TestStruct_ValidForm(t *testing.T) {
	v := New()

	form := domain.EncomendaForm{
		Name:              "Alice",
		House:             "12",
		PostalCode:        "01310-100",
		Address:           "Av. Paulista",
		SmallPackageCount: 2,
		PackageLabel:      "P1",
	}

	assert.NoError(t, v.Struct("encomenda.form", &form))
}

func TestStruct_AggregatesAllViolations(t *testing.T) {
	v := New()

	// Missing name and postalCode, negative count: all three must be
	// reported together, not just the first.
	form := domain.EncomendaForm{SmallPackageCount: -1}

	err := v.Struct("encomenda.form", &form)
	require.Error(t, err)
	require.True(t, domain.IsValidationError(err))

	fields := domain.GetValidationFields(err)
	require.Len(t, fields, 3)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}

	assert.Equal(t, "campo obrigatório", byField["name"])
	assert.Equal(t, "campo obrigatório", byField["postalCode"])
	assert.Equal(t, "deve ser maior ou igual a 0", byField["smallPackageCount"])
}

func TestStruct_ReportsFormFieldNames(t *testing.T) {
	v := New()

	form := domain.EncomendaForm{Name: "Alice"}

	err := v.Struct("encomenda.form", &form)
	require.Error(t, err)

	for _, f := range domain.GetValidationFields(err) {
		// Violations carry the wire name, not the Go field name.
		assert.NotEqual(t, "PostalCode", f.Field)
	}
}

func TestStruct_ZeroCountIsValid(t *testing.T) {
	v := New()

	form := domain.EncomendaForm{
		Name:       "Bob",
		PostalCode: "01310-100",
	}

	assert.NoError(t, v.Struct("encomenda.form", &form))
}
