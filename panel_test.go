package panel

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var errTestBus = errors.New("bus gone")

// testConn records every transport interaction in issue order and can
// inject a failure on the nth Command call.
type testConn struct {
	ops     []string
	cmds    int
	failCmd int // fail the nth Command call, 1-based; 0 = never
	resets  []gpio.Level
	closed  bool
}

func (c *testConn) String() string { return "testConn" }

func (c *testConn) Close() error {
	c.closed = true
	return nil
}

func (c *testConn) Reset(level gpio.Level) error {
	c.resets = append(c.resets, level)
	c.ops = append(c.ops, fmt.Sprintf("reset %s", level))
	return nil
}

func (c *testConn) Command(cmd byte, data ...byte) error {
	c.cmds++
	if c.failCmd > 0 && c.cmds == c.failCmd {
		return errTestBus
	}
	c.ops = append(c.ops, fmt.Sprintf("command %02x % x", cmd, data))
	return nil
}

func (c *testConn) Data(data ...byte) error {
	c.ops = append(c.ops, fmt.Sprintf("data % x", data))
	return nil
}

// clear drops the recorded stream, keeping the fault injection setting.
func (c *testConn) clear() {
	c.ops = nil
	c.resets = nil
}

// testModel is a small paged controller model for sequencer tests, with the
// same unlock shape as the ILI9806E.
func newTestModel(byteWise bool, seq ...Command) *Model {
	return &Model{
		name:       "TEST1234",
		compatible: []string{"test,test1234"},
		pages: pageMap{
			pages: []int{0, 1, 2},
			unlock: func(page int) (byte, []byte) {
				return 0xff, []byte{0xff, 0x12, 0x34, byte(page)}
			},
		},
		byteWise: byteWise,
		reset:    ResetPulse(15*time.Microsecond, time.Millisecond),
		sequence: func(*Config) []Command { return seq },
		modes:    []Mode{simpleMode(8, 8, 10, 10, BusFormatRGB565)},
	}
}

func newTestController(c Conn, byteWise bool, seq ...Command) *Controller {
	ctrl, err := newController(c, newTestModel(byteWise, seq...), &Config{})
	if err != nil {
		panic(err)
	}
	return ctrl
}
