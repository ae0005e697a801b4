package panel

import "fmt"

// BusFormat identifies the fixed pixel encoding of a display mode. Exactly
// one bus format is paired with each mode; there is no runtime negotiation.
type BusFormat uint8

// Supported bus formats.
const (
	BusFormatRGB666 BusFormat = iota + 1 // 18-bit RGB, 1x18 bus
	BusFormatRGB565                      // 16-bit RGB 5-6-5
)

func (f BusFormat) String() string {
	switch f {
	case BusFormatRGB666:
		return "RGB666-1x18"
	case BusFormatRGB565:
		return "RGB565"
	default:
		return "invalid"
	}
}

// Mode is the static description of one fixed display mode: geometry,
// blanking intervals, sync polarities and physical size. Vendor panels in
// this class report exactly one mode.
type Mode struct {
	// Active area in pixels.
	Width, Height int

	// Physical size in millimeters.
	WidthMM, HeightMM int

	// Pixel clock in kHz.
	Clock int

	// Horizontal timings in pixels: sync start, sync end, total line width.
	HSyncStart, HSyncEnd, HTotal int

	// Vertical timings in lines.
	VSyncStart, VSyncEnd, VTotal int

	// Sync polarities, true for active-low sync pulses.
	NegHSync, NegVSync bool

	// Preferred marks the panel's native mode.
	Preferred bool

	// Format is the bus pixel encoding paired with this mode.
	Format BusFormat
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%d", m.Width, m.Height, m.Refresh())
}

// Refresh returns the vertical refresh rate in Hz, rounded to the nearest
// integer.
func (m Mode) Refresh() int {
	den := m.HTotal * m.VTotal
	if den == 0 {
		return 0
	}
	return (m.Clock*1000 + den/2) / den
}

// simpleMode describes a mode with zero blanking at 60 Hz, the shape used by
// controllers that scan out of internal RAM and expose no bus timings.
func simpleMode(width, height, widthMM, heightMM int, format BusFormat) Mode {
	return Mode{
		Width:      width,
		Height:     height,
		WidthMM:    widthMM,
		HeightMM:   heightMM,
		Clock:      width * height * 60 / 1000,
		HSyncStart: width,
		HSyncEnd:   width,
		HTotal:     width,
		VSyncStart: height,
		VSyncEnd:   height,
		VTotal:     height,
		Preferred:  true,
		Format:     format,
	}
}

// Modes returns the supported display modes. The result is a fresh copy of
// the model's static table: the same values every call, safe for the caller
// to hold or modify.
func (c *Controller) Modes() []Mode {
	modes := make([]Mode, len(c.model.modes))
	copy(modes, c.model.modes)
	return modes
}
