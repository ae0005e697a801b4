package panel

import (
	"fmt"
	"sort"

	"github.com/BeatGlow/panel/conn"
)

// Model is the compiled-in description of one controller model: its register
// page layout, command framing, reset timing, init sequence and display
// mode. Model tables are constants; nothing in them is configured at run
// time.
type Model struct {
	name       string
	compatible []string
	pages      pageMap
	byteWise   bool // command followed by one transfer per payload byte
	spiMode    conn.SPIMode
	spiSpeedHz int
	reset      Command
	sequence   func(*Config) []Command
	modes      []Mode
}

// Name returns the controller model name.
func (m *Model) Name() string { return m.name }

// validate dry-runs a command sequence against the model's page map,
// tracking the selected page the way the hardware would. Broken hand-built
// tables fail here, at construction, instead of on the panel.
func (m *Model) validate(seq []Command) error {
	page := pageUndefined
	if m.pages.unlock == nil {
		page = pageSystem
	}
	for i, cmd := range seq {
		switch cmd.op {
		case opSelectPage:
			if !m.pages.valid(cmd.page) {
				return &SequenceError{Step: i, Cmd: cmd,
					Err: fmt.Errorf("panel: %s has no register page %d", m.name, cmd.page)}
			}
			page = cmd.page
		case opWriteReg, opEnterSleep, opExitSleep, opDisplayOn, opDisplayOff:
			if m.pages.unlock != nil && cmd.page != page {
				return &SequenceError{Step: i, Cmd: cmd,
					Err: &PageMismatchError{Reg: cmd.opcode(), Page: cmd.page, Current: page}}
			}
		case opResetPulse:
			page = pageSystem
		}
	}
	return nil
}

// models maps compatible strings to controller models. Resolution happens
// once, at construction.
var models = make(map[string]*Model)

func register(m *Model) {
	for _, compatible := range m.compatible {
		models[compatible] = m
	}
}

// Models returns the known compatible strings in sorted order.
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
