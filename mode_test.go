package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestILI9806EMode(t *testing.T) {
	ctrl, err := ILI9806E(&testConn{}, nil)
	require.NoError(t, err)

	modes := ctrl.Modes()
	require.Len(t, modes, 1)

	mode := modes[0]
	assert.Equal(t, 480, mode.Width)
	assert.Equal(t, 800, mode.Height)
	assert.Equal(t, 51, mode.WidthMM)
	assert.Equal(t, 85, mode.HeightMM)
	assert.Equal(t, 30000, mode.Clock)
	assert.Equal(t, 505, mode.HSyncStart)
	assert.Equal(t, 559, mode.HSyncEnd)
	assert.Equal(t, 584, mode.HTotal)
	assert.Equal(t, 825, mode.VSyncStart)
	assert.Equal(t, 839, mode.VSyncEnd)
	assert.Equal(t, 861, mode.VTotal)
	assert.True(t, mode.NegHSync)
	assert.True(t, mode.NegVSync)
	assert.True(t, mode.Preferred)
	assert.Equal(t, BusFormatRGB666, mode.Format)
}

func TestST7789VMode(t *testing.T) {
	ctrl, err := ST7789V(&testConn{}, nil)
	require.NoError(t, err)

	modes := ctrl.Modes()
	require.Len(t, modes, 1)

	mode := modes[0]
	assert.Equal(t, 240, mode.Width)
	assert.Equal(t, 320, mode.Height)
	assert.Equal(t, 36, mode.WidthMM)
	assert.Equal(t, 48, mode.HeightMM)
	assert.True(t, mode.Preferred)
	assert.Equal(t, BusFormatRGB565, mode.Format)
	assert.Equal(t, 60, mode.Refresh())
}

func TestModesReturnsACopy(t *testing.T) {
	ctrl, err := ILI9806E(&testConn{}, nil)
	require.NoError(t, err)

	modes := ctrl.Modes()
	modes[0].Width = 1

	again := ctrl.Modes()
	assert.Equal(t, 480, again[0].Width, "Modes must return the same static value every call")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "480x800@60", nds040480800V3Mode.String())
	assert.Equal(t, "240x320@60", simpleMode(240, 320, 36, 48, BusFormatRGB565).String())
}

func TestBusFormatString(t *testing.T) {
	assert.Equal(t, "RGB666-1x18", BusFormatRGB666.String())
	assert.Equal(t, "RGB565", BusFormatRGB565.String())
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Off, "off"},
		{Resetting, "resetting"},
		{Initializing, "initializing"},
		{On, "on"},
		{Suspended, "suspended"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
