package sprc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tables := []struct {
		name string
		mode Mode
	}{
		{"layered", Layered1bpp},
		{"2bpp", Packed2bpp},
		{"4bpp", Packed4bpp},
	}
	for _, table := range tables {
		m, err := ParseMode(table.name)
		require.NoError(t, err)
		assert.Equal(t, table.mode, m)
		assert.Equal(t, table.name, m.String())
	}

	_, err := ParseMode("8bpp")
	assert.Error(t, err)
}

func TestModeConstants(t *testing.T) {
	assert.Equal(t, 1, Layered1bpp.Bpp())
	assert.Equal(t, 2, Packed2bpp.Bpp())
	assert.Equal(t, 4, Packed4bpp.Bpp())

	assert.Equal(t, 0, Layered1bpp.Capacity())
	assert.Equal(t, 4, Packed2bpp.Capacity())
	assert.Equal(t, 16, Packed4bpp.Capacity())
}
