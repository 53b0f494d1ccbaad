package guard_test

import (
	"errors"
	"testing"

	"rental/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Rental must be created via NewRental")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type plate struct {
		value string
		guard guard.ConstructorGuard
	}
	errPlateNotConstructed := errors.New("plate must be created via newPlate")

	newPlate := func(v string) (plate, error) {
		if v == "" {
			return plate{}, errors.New("plate is required")
		}
		return plate{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		p, err := newPlate("ABC1D23")

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPlateNotConstructed))
	})

	t.Run("failed_construction_yields_invalid_zero_value", func(t *testing.T) {
		p, err := newPlate("")

		require.Error(t, err)
		assert.Equal(t, errPlateNotConstructed, p.guard.Validate(errPlateNotConstructed))
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		p, err := newPlate("XYZ9K87")
		require.NoError(t, err)

		cp := p

		require.NoError(t, cp.guard.Validate(errPlateNotConstructed))
	})
}
