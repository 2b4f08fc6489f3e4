package validation_test

import (
	"cotacao/validation"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlate(t *testing.T) {
	t.Parallel()

	valid := []string{"ABC1D23", "XYZ9A88", "ABC1234"}
	for _, plate := range valid {
		assert.True(t, validation.ValidatePlate(plate), plate)
	}

	invalid := []string{"ab12345", "ABC12345", "abc1d23", "AB1CD23", "ABC-1234", "", "ABC1D2"}
	for _, plate := range invalid {
		assert.False(t, validation.ValidatePlate(plate), plate)
	}
}

func TestNormalizePlate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ABC1234", validation.NormalizePlate(" abc-1234 "))
	assert.Equal(t, "XYZ9A88", validation.NormalizePlate("xyz9a88"))
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	assert.NoError(t, validation.Validate(form{Name: "Maria", Email: "maria@example.com"}))
	assert.Error(t, validation.Validate(form{Name: "Maria", Email: "maria"}))
	assert.Error(t, validation.Validate(form{Email: "maria@example.com"}))
}
