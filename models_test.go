package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsAreRegistered(t *testing.T) {
	names := Models()
	assert.Contains(t, names, "newdisplay,nds040480800-v3")
	assert.Contains(t, names, "nds040480800-v3")
	assert.Contains(t, names, "sitronix,st7789v_custom")
	assert.Contains(t, names, "st7789v_custom")
	assert.IsNonDecreasing(t, names)
}

func TestNewResolvesCompatible(t *testing.T) {
	ctrl, err := New(&testConn{}, &Config{Model: "nds040480800-v3"})
	require.NoError(t, err)
	assert.Equal(t, "ILI9806E", ctrl.model.Name())

	ctrl, err = New(&testConn{}, &Config{Model: "sitronix,st7789v_custom"})
	require.NoError(t, err)
	assert.Equal(t, "ST7789V", ctrl.model.Name())
}

func TestNewUnknownModel(t *testing.T) {
	_, err := New(&testConn{}, &Config{Model: "acme,unobtainium"})
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = New(&testConn{}, nil)
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = New(&testConn{}, &Config{})
	assert.ErrorIs(t, err, ErrUnknownModel)
}

// Every registered model's command table must pass page validation for
// every rotation; a broken table is a defect caught here, not on hardware.
func TestRegisteredSequencesValidate(t *testing.T) {
	for name, model := range models {
		for _, rotation := range []Rotation{NoRotation, Rotate90, Rotate180, Rotate270} {
			seq := model.sequence(&Config{Rotation: rotation})
			require.NotEmpty(t, seq, name)
			assert.NoError(t, model.validate(seq), name)
		}
	}
}

func TestValidateCatchesWrongPage(t *testing.T) {
	model := newTestModel(false)

	err := model.validate([]Command{
		SelectPage(1),
		WriteReg(2, 0x17, 0x22),
	})
	var pageErr *PageMismatchError
	require.ErrorAs(t, err, &pageErr)

	err = model.validate([]Command{SelectPage(9)})
	require.Error(t, err)
}

func TestST7789VRotationSelectsAddressMode(t *testing.T) {
	tests := []struct {
		rotation Rotation
		want     byte
	}{
		{NoRotation, 0x00},
		{Rotate90, st7789vMX | st7789vMV},
		{Rotate180, st7789vMX | st7789vMY},
		{Rotate270, st7789vMY | st7789vMV},
	}
	for _, tt := range tests {
		t.Run(tt.rotation.String(), func(t *testing.T) {
			seq := st7789vSequence(&Config{Rotation: tt.rotation})

			var found bool
			for _, cmd := range seq {
				if cmd.op == opWriteReg && cmd.reg == dcsSetAddressMode {
					require.Len(t, cmd.data, 1)
					assert.Equal(t, tt.want, cmd.data[0])
					found = true
				}
			}
			assert.True(t, found, "sequence must program the address mode")
		})
	}
}

func TestILI9806ESequenceShape(t *testing.T) {
	seq := ili9806eSequence(nil)

	// The table walks pages 1, 6, 7 and returns to the system page for the
	// sleep-out/display-on tail, exactly as the vendor specifies.
	var pages []int
	for _, cmd := range seq {
		if cmd.op == opSelectPage {
			pages = append(pages, cmd.page)
		}
	}
	assert.Equal(t, []int{1, 6, 7, 0}, pages)

	tail := seq[len(seq)-4:]
	assert.Equal(t, opWriteReg, tail[0].op) // tear on
	assert.Equal(t, byte(dcsSetTearOn), tail[0].reg)
	assert.Equal(t, opExitSleep, tail[1].op)
	assert.Equal(t, opDelay, tail[2].op)
	assert.GreaterOrEqual(t, tail[2].wait, sleepOutSettle)
	assert.Equal(t, opDisplayOn, tail[3].op)
}
