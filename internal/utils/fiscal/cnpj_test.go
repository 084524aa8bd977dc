package fiscal_test

import (
	"testing"

	"github.com/ldmoraes/contas_app/internal/utils/fiscal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCNPJ(t *testing.T) {
	assert.Equal(t, "11222333000181", fiscal.NormalizeCNPJ("11.222.333/0001-81"))
	assert.Equal(t, "11222333000181", fiscal.NormalizeCNPJ("11222333000181"))
	assert.Equal(t, "", fiscal.NormalizeCNPJ(""))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", fiscal.FormatCNPJ("11222333000181"))
	// Wrong length passes through untouched.
	assert.Equal(t, "1234", fiscal.FormatCNPJ("1234"))
}

func TestValidateCNPJ(t *testing.T) {
	assert.NoError(t, fiscal.ValidateCNPJ("11.222.333/0001-81"))
	assert.NoError(t, fiscal.ValidateCNPJ("11222333000181"))

	assert.Error(t, fiscal.ValidateCNPJ("11222333000182"), "wrong second check digit")
	assert.Error(t, fiscal.ValidateCNPJ("11222333000171"), "wrong first check digit")
	assert.Error(t, fiscal.ValidateCNPJ("11111111111111"), "repeated digits")
	assert.Error(t, fiscal.ValidateCNPJ("123"), "too short")
}
