package panel

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// The reset line on both supported controllers (RESX) is active low.
const (
	resetAssert   = gpio.Low
	resetDeassert = gpio.High
)

// Register pages. Page 0 is the default/system page holding the standard
// DCS registers; higher pages are vendor extensions unlocked with a
// model-specific command.
const (
	pageSystem    = 0
	pageUndefined = -1
)

// pageMap describes a model's register page layout: the set of valid pages
// and the command that selects one. Models without vendor page extensions
// leave unlock nil and expose only the system page.
type pageMap struct {
	pages  []int
	unlock func(page int) (reg byte, data []byte)
}

func (m *pageMap) valid(page int) bool {
	if m.unlock == nil {
		return page == pageSystem
	}
	for _, p := range m.pages {
		if p == page {
			return true
		}
	}
	return false
}

// selectPage emits the page-select command and records the new page. On
// models without page extensions only the system page can be selected, and
// selecting it emits nothing.
func (c *Controller) selectPage(page int) error {
	m := &c.model.pages
	if !m.valid(page) {
		return fmt.Errorf("panel: %s has no register page %d", c.model.name, page)
	}
	if m.unlock == nil {
		c.page = pageSystem
		return nil
	}
	reg, data := m.unlock(page)
	if err := c.writeReg(reg, data...); err != nil {
		return err
	}
	c.page = page
	return nil
}

// resolve validates that the command's register is addressable on the
// currently selected page. A mismatch is a defect in the command table and
// is reported, never silently corrected.
func (c *Controller) resolve(cmd Command) error {
	if c.model.pages.unlock == nil {
		// Single-page controller, every register lives on the system page.
		return nil
	}
	if cmd.page != c.page {
		return &PageMismatchError{Reg: cmd.opcode(), Page: cmd.page, Current: c.page}
	}
	return nil
}
