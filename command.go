package panel

import (
	"fmt"
	"time"
)

// MIPI DCS opcodes used by the lifecycle commands. Both supported
// controllers implement the standard Display Command Set on the system page.
const (
	dcsEnterSleepMode  = 0x10
	dcsExitSleepMode   = 0x11
	dcsEnterNormalMode = 0x13
	dcsSetDisplayOff   = 0x28
	dcsSetDisplayOn    = 0x29
	dcsSetTearOn       = 0x35
	dcsSetAddressMode  = 0x36
	dcsSetPixelFormat  = 0x3A
)

type op uint8

const (
	opSelectPage op = iota
	opWriteReg
	opDelay
	opResetPulse
	opEnterSleep
	opExitSleep
	opDisplayOn
	opDisplayOff
)

// Command is one step of a controller command sequence. Commands are
// immutable and assembled into per-model tables at compile time; the
// sequencer replays them in declared order with no branching and no retries.
type Command struct {
	op     op
	page   int
	reg    byte
	data   []byte
	wait   time.Duration
	low    time.Duration
	settle time.Duration
}

// SelectPage switches the controller to the numbered register page. The
// page-select command is valid regardless of the currently selected page.
func SelectPage(page int) Command {
	return Command{op: opSelectPage, page: page}
}

// WriteReg writes data bytes to a register on the given page. The page must
// be selected when the command executes.
func WriteReg(page int, reg byte, data ...byte) Command {
	return Command{op: opWriteReg, page: page, reg: reg, data: data}
}

// Delay blocks the sequence for at least d. Timing is a floor, not an exact
// bound: the controller tolerates longer waits but not shorter ones.
func Delay(d time.Duration) Command {
	return Command{op: opDelay, wait: d}
}

// ResetPulse asserts the hardware reset line for at least low, deasserts it,
// and waits at least settle before the next step runs.
func ResetPulse(low, settle time.Duration) Command {
	return Command{op: opResetPulse, low: low, settle: settle}
}

// EnterSleep puts the controller in sleep-in mode.
func EnterSleep() Command { return Command{op: opEnterSleep, page: pageSystem} }

// ExitSleep leaves sleep mode. The controller needs time to stabilize its
// power rails afterwards; sequences follow it with Delay.
func ExitSleep() Command { return Command{op: opExitSleep, page: pageSystem} }

// DisplayOn enables scan-out.
func DisplayOn() Command { return Command{op: opDisplayOn, page: pageSystem} }

// DisplayOff blanks the panel.
func DisplayOff() Command { return Command{op: opDisplayOff, page: pageSystem} }

func (cmd Command) String() string {
	switch cmd.op {
	case opSelectPage:
		return fmt.Sprintf("select page %d", cmd.page)
	case opWriteReg:
		if len(cmd.data) == 0 {
			return fmt.Sprintf("write page %d register %#02x", cmd.page, cmd.reg)
		}
		return fmt.Sprintf("write page %d register %#02x % x", cmd.page, cmd.reg, cmd.data)
	case opDelay:
		return fmt.Sprintf("delay %s", cmd.wait)
	case opResetPulse:
		return fmt.Sprintf("reset pulse %s low, %s settle", cmd.low, cmd.settle)
	case opEnterSleep:
		return "enter sleep"
	case opExitSleep:
		return "exit sleep"
	case opDisplayOn:
		return "display on"
	case opDisplayOff:
		return "display off"
	default:
		return "invalid"
	}
}

// opcode returns the wire opcode for the fixed lifecycle commands.
func (cmd Command) opcode() byte {
	switch cmd.op {
	case opEnterSleep:
		return dcsEnterSleepMode
	case opExitSleep:
		return dcsExitSleepMode
	case opDisplayOn:
		return dcsSetDisplayOn
	case opDisplayOff:
		return dcsSetDisplayOff
	default:
		return cmd.reg
	}
}

// run replays a command sequence in declared order. Execution halts on the
// first error; the error carries the index of the failed step. Completed
// steps are not rolled back: after a failure the panel is in an undefined
// state and the only defined recovery is a full reset and reinit.
func (c *Controller) run(seq []Command) error {
	for i, cmd := range seq {
		if err := c.step(cmd); err != nil {
			return &SequenceError{Step: i, Cmd: cmd, Err: err}
		}
	}
	return nil
}

func (c *Controller) step(cmd Command) error {
	switch cmd.op {
	case opSelectPage:
		return c.selectPage(cmd.page)

	case opWriteReg, opEnterSleep, opExitSleep, opDisplayOn, opDisplayOff:
		if err := c.resolve(cmd); err != nil {
			return err
		}
		return c.writeReg(cmd.opcode(), cmd.data...)

	case opDelay:
		time.Sleep(cmd.wait)
		return nil

	case opResetPulse:
		return c.resetPulse(cmd.low, cmd.settle)

	default:
		return fmt.Errorf("panel: invalid command %#v", cmd)
	}
}

// writeReg emits one register write through the transport using the model's
// framing: either a command with its payload in one transfer, or the command
// followed by one transfer per payload byte.
func (c *Controller) writeReg(reg byte, data ...byte) error {
	if !c.model.byteWise {
		if err := c.c.Command(reg, data...); err != nil {
			return &TransportError{Op: "write", Err: err}
		}
		return nil
	}
	if err := c.c.Command(reg); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	for _, b := range data {
		if err := c.c.Data(b); err != nil {
			return &TransportError{Op: "write", Err: err}
		}
	}
	return nil
}

// resetPulse drives the reset line low for at least low, releases it and
// waits at least settle. A hardware reset returns the controller to the
// system register page.
func (c *Controller) resetPulse(low, settle time.Duration) error {
	if err := c.c.Reset(resetAssert); err != nil {
		return &TransportError{Op: "reset", Err: err}
	}
	time.Sleep(low)
	if err := c.c.Reset(resetDeassert); err != nil {
		return &TransportError{Op: "reset", Err: err}
	}
	time.Sleep(settle)
	c.page = pageSystem
	return nil
}
