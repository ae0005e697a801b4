package panel

import (
	"fmt"
	"log"
	"time"
)

// The controller needs at least 120 ms after sleep-out before its power
// rails are stable enough for display-on.
const sleepOutSettle = 120 * time.Millisecond

// Config is the controller configuration.
type Config struct {
	// Model is the compatible string of the attached controller.
	Model string

	// Rotation of the panel scan-out, on models that support it.
	Rotation Rotation

	// Watchdog, when non-zero, bounds the wall time of each lifecycle
	// transition. A transition that overruns poisons the controller: the
	// call returns a *TimingError and the instance is unusable afterwards.
	// The in-flight command sequence is not cancelled; it finishes in the
	// background against a panel the host has already given up on.
	Watchdog time.Duration
}

// Controller drives one panel controller instance through its lifecycle.
// It is not safe for concurrent use: the controller's internal state machine
// is strictly sequential and does not tolerate interleaved writes. Distinct
// instances on distinct buses are independent.
type Controller struct {
	c        Conn
	model    *Model
	seq      []Command
	state    State
	page     int
	watchdog time.Duration
	fatal    error
}

// New creates a Controller for the configured model on the given transport.
// The model's command table is resolved and validated here; the panel is not
// touched until Prepare.
func New(c Conn, config *Config) (*Controller, error) {
	if config == nil || config.Model == "" {
		return nil, ErrUnknownModel
	}
	model, ok := models[config.Model]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, config.Model)
	}
	return newController(c, model, config)
}

func newController(c Conn, model *Model, config *Config) (*Controller, error) {
	if spi, ok := c.(SPI); ok {
		spi.SetDataLow(false)
		if err := spi.SetMode(model.spiMode); err != nil {
			return nil, err
		}
		if model.spiSpeedHz > 0 {
			if err := spi.SetMaxSpeed(model.spiSpeedHz); err != nil {
				return nil, err
			}
		}
	}

	seq := model.sequence(config)
	if err := model.validate(seq); err != nil {
		return nil, err
	}

	ctrl := &Controller{
		c:     c,
		model: model,
		seq:   seq,
		state: Off,
		page:  pageUndefined,
	}
	ctrl.watchdog = config.Watchdog
	return ctrl, nil
}

func (c *Controller) String() string {
	mode := c.model.modes[0]
	return fmt.Sprintf("%s %dx%d", c.model.name, mode.Width, mode.Height)
}

// State returns the current lifecycle state. After a failed transition it
// reports the state the failure happened in, not the target state.
func (c *Controller) State() State {
	return c.state
}

// Prepare brings the panel from Off to On: reset pulse, full vendor init
// sequence, sleep-out settle, display on. On error the controller stays in
// the state the failure happened in and the panel is in an undefined,
// partially initialized state; the only recovery is another Prepare from
// Off after Unprepare, or discarding the instance.
func (c *Controller) Prepare() error {
	return c.transition("prepare", Off, func() error {
		c.state = Resetting
		if err := c.step(c.model.reset); err != nil {
			return err
		}
		c.state = Initializing
		if err := c.run(c.seq); err != nil {
			return err
		}
		c.state = On
		return nil
	})
}

// Unprepare soft-powers the panel down from On to Off: display off, then
// sleep in. No reset is asserted; the bus stays addressable so a later
// Prepare can reinitialize the panel.
func (c *Controller) Unprepare() error {
	return c.transition("unprepare", On, func() error {
		if err := c.run([]Command{DisplayOff(), EnterSleep()}); err != nil {
			return err
		}
		c.state = Off
		return nil
	})
}

// Suspend blanks the panel and enters sleep mode. Configuration registers
// retain their values, so Resume restores the display without rerunning the
// init sequence.
func (c *Controller) Suspend() error {
	return c.transition("suspend", On, func() error {
		if err := c.run([]Command{DisplayOff(), EnterSleep()}); err != nil {
			return err
		}
		c.state = Suspended
		return nil
	})
}

// Resume leaves sleep mode and re-enables the display. It never replays the
// configuration sequence: register state survives sleep, unlike a hard
// reset.
func (c *Controller) Resume() error {
	return c.transition("resume", Suspended, func() error {
		if err := c.run([]Command{ExitSleep(), Delay(sleepOutSettle), DisplayOn()}); err != nil {
			return err
		}
		c.state = On
		return nil
	})
}

// Close powers the panel down when it is displaying and closes the
// transport.
func (c *Controller) Close() error {
	switch c.state {
	case On:
		if err := c.Unprepare(); err != nil {
			_ = c.c.Close()
			return err
		}
	case Suspended:
		// Display off and sleep in were already sent on suspend; the
		// panel is in the same condition Unprepare leaves it in.
		c.state = Off
	}
	return c.c.Close()
}

func (c *Controller) guard(op string, from State) error {
	if c.state != from {
		return &InvalidStateTransitionError{Op: op, From: c.state}
	}
	return nil
}

func (c *Controller) transition(op string, from State, fn func() error) error {
	if c.fatal != nil {
		return c.fatal
	}
	if err := c.guard(op, from); err != nil {
		return err
	}
	if debug {
		log.Printf("panel: %s: %s from %s", c.model.name, op, c.state)
	}
	if c.watchdog <= 0 {
		return fn()
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(c.watchdog)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		c.fatal = &TimingError{Op: op, Budget: c.watchdog}
		return c.fatal
	}
}
