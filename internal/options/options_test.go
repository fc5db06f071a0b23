package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movequote/movequote/internal/shared"
)

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry([]Option{
		{ID: "packing", Name: "Packing service", BasePrice: 15000},
		{ID: "aircon", Name: "Air conditioner removal", BasePrice: 12000},
	})
	require.NoError(t, err)

	assert.Len(t, reg.List(), 2)
	assert.Equal(t, "packing", reg.List()[0].ID)

	o, err := reg.Get("aircon")
	require.NoError(t, err)
	assert.EqualValues(t, 12000, o.BasePrice)

	_, err = reg.Get("storage")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRegistryRejectsBadInput(t *testing.T) {
	_, err := NewRegistry([]Option{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)
	_, err = NewRegistry([]Option{{Name: "nameless"}})
	assert.Error(t, err)
	_, err = NewRegistry([]Option{{ID: "neg", BasePrice: -1}})
	assert.Error(t, err)
}
