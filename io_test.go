package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus(t *testing.T) {
	b := logicsim.NewBoard()
	sw := place(t, b, logicsim.TopLevel, hl.SwitchN(8), "")
	o, err := sw.OutputBus("O")
	require.NoError(t, err)
	require.Len(t, o, 8)

	for _, v := range []uint64{0, 1, 0x80, 0xa5, 0xff} {
		require.NoError(t, logicsim.SetUint(o, v))
		assert.Equal(t, v, logicsim.Uint(o))
	}
	assert.Equal(t, "11111111", logicsim.FormatBits(o))
	require.NoError(t, logicsim.SetUint(o, 0x0c))
	assert.Equal(t, "00001100", logicsim.FormatBits(o))
	assert.Equal(t, []bool{false, false, true, true, false, false, false, false}, logicsim.Bits(o))

	assert.ErrorIs(t, logicsim.SetUint(o, 0x100), logicsim.ErrRange)
	assert.Equal(t, uint64(0x0c), logicsim.Uint(o), "out of range value must not be applied")

	_, err = sw.OutputBus("I")
	assert.ErrorIs(t, err, logicsim.ErrNotFound)
	assert.Equal(t, "", logicsim.FormatBits(nil))
	assert.Equal(t, uint64(0), logicsim.Uint(nil))
}
