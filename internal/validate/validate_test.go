package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/validate"
)

func TestErrorsUseJSONNames(t *testing.T) {
	err := validate.Struct(domain.ProductInput{})
	require.Error(t, err)
	fields := validate.Errors(err)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "price_cents is required", fields["price_cents"])
}

func TestErrorsNested(t *testing.T) {
	err := validate.Struct(domain.OrderInput{Items: []domain.OrderItem{{ProductID: "a", Quantity: 0}}})
	require.Error(t, err)
	assert.Contains(t, validate.Errors(err), "items[0].quantity")
}

func TestErrorsNonValidation(t *testing.T) {
	assert.Equal(t, map[string]string{"body": "malformed request body"}, validate.Errors(errors.New("bad json")))
	assert.Empty(t, validate.Errors(nil))
}

func TestID(t *testing.T) {
	for _, ok := range []string{"abc", "0f8c1e2a-7d3b-4b7e-9a55-1c2d3e4f5a6b", "a_b"} {
		_, valid := validate.ID(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", " ", "../etc", "a b", string(make([]byte, 65))} {
		_, valid := validate.ID(bad)
		assert.False(t, valid, bad)
	}
}

func TestEmail(t *testing.T) {
	got, ok := validate.Email("  first.last@mail.co.uk ")
	assert.True(t, ok)
	assert.Equal(t, "first.last@mail.co.uk", got)

	_, ok = validate.Email("not-an-email")
	assert.False(t, ok)
}

func TestProvider(t *testing.T) {
	got, ok := validate.Provider("Google")
	assert.True(t, ok)
	assert.Equal(t, "google", got)

	_, ok = validate.Provider("bad/provider")
	assert.False(t, ok)
}
