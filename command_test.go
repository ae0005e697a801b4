package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

func TestRunExecutesInDeclaredOrder(t *testing.T) {
	c := &testConn{}
	ctrl := newTestController(c, false)

	err := ctrl.run([]Command{
		SelectPage(1),
		WriteReg(1, 0x40, 0x10),
		WriteReg(1, 0x41, 0x55),
		SelectPage(0),
		WriteReg(0, 0x35),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"command ff ff 12 34 01",
		"command 40 10",
		"command 41 55",
		"command ff ff 12 34 00",
		"command 35 ",
	}, c.ops, "every step must execute exactly once, in order")
}

func TestRunByteWiseFraming(t *testing.T) {
	c := &testConn{}
	ctrl := newTestController(c, true)
	ctrl.page = pageSystem

	require.NoError(t, ctrl.run([]Command{
		WriteReg(0, 0xB2, 0x0C, 0x0C),
	}))

	// Per-byte framing sends the command alone and one transfer per
	// payload byte.
	assert.Equal(t, []string{
		"command b2 ",
		"data 0c",
		"data 0c",
	}, c.ops)
}

func TestRunHaltsOnTransportError(t *testing.T) {
	c := &testConn{failCmd: 3}
	ctrl := newTestController(c, false)

	err := ctrl.run([]Command{
		SelectPage(1),
		WriteReg(1, 0x40, 0x10),
		WriteReg(1, 0x41, 0x55), // third Command call, fails
		WriteReg(1, 0x42, 0x02),
	})

	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, 2, seqErr.Step)

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
	assert.True(t, errors.Is(err, errTestBus))

	// Nothing after the failed step may reach the bus.
	assert.Len(t, c.ops, 2)
}

func TestResetPulseTiming(t *testing.T) {
	c := &testConn{}
	ctrl := newTestController(c, false)

	const (
		low    = 15 * time.Microsecond
		settle = 125 * time.Millisecond
	)
	start := time.Now()
	require.NoError(t, ctrl.step(ResetPulse(low, settle)))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, low+settle,
		"reset must hold for at least the low time and return no earlier than the settle time after deassert")
	assert.Equal(t, []gpio.Level{gpio.Low, gpio.High}, c.resets)
}

func TestDelayIsAFloor(t *testing.T) {
	ctrl := newTestController(&testConn{}, false)

	const wait = 50 * time.Millisecond
	start := time.Now()
	require.NoError(t, ctrl.step(Delay(wait)))

	assert.GreaterOrEqual(t, time.Since(start), wait)
}

func TestLifecycleCommandOpcodes(t *testing.T) {
	c := &testConn{}
	ctrl := newTestController(c, false)
	ctrl.page = pageSystem

	require.NoError(t, ctrl.run([]Command{
		DisplayOff(), EnterSleep(), ExitSleep(), DisplayOn(),
	}))

	assert.Equal(t, []string{
		"command 28 ",
		"command 10 ",
		"command 11 ",
		"command 29 ",
	}, c.ops)
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{SelectPage(6), "select page 6"},
		{WriteReg(1, 0x40, 0x10), "write page 1 register 0x40 10"},
		{WriteReg(0, 0x35), "write page 0 register 0x35"},
		{Delay(120 * time.Millisecond), "delay 120ms"},
		{EnterSleep(), "enter sleep"},
		{ExitSleep(), "exit sleep"},
		{DisplayOn(), "display on"},
		{DisplayOff(), "display off"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.String())
	}
}
