package panel

import (
	"time"

	"github.com/BeatGlow/panel/conn"
)

// Registers (from the ST7789V datasheet). The controller has no vendor page
// extension; everything lives on the system page.
const (
	st7789vPORCTRL   = 0xB2 // Porch Setting
	st7789vGCTRL     = 0xB7 // Gate Control
	st7789vVCOMS     = 0xBB // VCOM Setting
	st7789vLCMCTRL   = 0xC0 // LCM Control
	st7789vVDVVRHEN  = 0xC2 // VDV and VRH Command Enable
	st7789vVRHS      = 0xC3 // VRH Set
	st7789vVDVSET    = 0xC4 // VDV Set
	st7789vFRCTRL2   = 0xC6 // Frame Rate Control in Normal Mode
	st7789vPWCTRL1   = 0xD0 // Power Control 1
	st7789vPVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789vNVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	st7789vMH  = 1 << 2 // Display data latch order
	st7789vRGB = 1 << 3 // RGB/BGR order
	st7789vML  = 1 << 4 // Line address order
	st7789vMV  = 1 << 5 // Page/column order
	st7789vMX  = 1 << 6 // Column address order
	st7789vMY  = 1 << 7 // Page address order
)

func st7789vAddressMode(rotation Rotation) byte {
	switch rotation % 4 {
	case Rotate90:
		return st7789vMX | st7789vMV
	case Rotate180:
		return st7789vMX | st7789vMY
	case Rotate270:
		return st7789vMY | st7789vMV
	default:
		return 0
	}
}

func st7789vSequence(config *Config) []Command {
	return []Command{
		// 16-bit/pixel over the serial interface.
		WriteReg(0, dcsSetPixelFormat, 0x05),
		WriteReg(0, st7789vPORCTRL, 0x0C, 0x0C, 0x00, 0x33, 0x33),
		WriteReg(0, st7789vGCTRL, 0x35),
		WriteReg(0, st7789vVCOMS, 0x19),
		WriteReg(0, st7789vLCMCTRL, 0x2C),
		WriteReg(0, st7789vVDVVRHEN, 0x01),
		WriteReg(0, st7789vVRHS, 0x12),
		WriteReg(0, st7789vVDVSET, 0x20),
		WriteReg(0, st7789vFRCTRL2, 0x0F),
		WriteReg(0, st7789vPWCTRL1, 0xA4, 0xA1),
		WriteReg(0, st7789vPVGAMCTRL,
			0xD0, 0x04, 0x0D, 0x11, 0x13, 0x2B, 0x3F,
			0x54, 0x4C, 0x18, 0x0D, 0x0B, 0x1F, 0x23),
		WriteReg(0, st7789vNVGAMCTRL,
			0xD0, 0x04, 0x0C, 0x11, 0x13, 0x2C, 0x3F,
			0x44, 0x51, 0x2F, 0x1F, 0x1F, 0x20, 0x23),
		WriteReg(0, dcsEnterNormalMode),
		WriteReg(0, dcsSetAddressMode, st7789vAddressMode(config.Rotation)),
		ExitSleep(),
		Delay(sleepOutSettle),
		DisplayOn(),
		Delay(20 * time.Millisecond),
	}
}

var st7789vModel = &Model{
	name:       "ST7789V",
	compatible: []string{"sitronix,st7789v_custom", "st7789v_custom"},
	pages:      pageMap{},
	// One transfer per payload byte; the controller latches the
	// data/command line on every byte.
	byteWise:   true,
	spiMode:    conn.SPIMode3,
	spiSpeedHz: 40_000_000,
	reset:      ResetPulse(20*time.Microsecond, 120*time.Millisecond),
	sequence:   st7789vSequence,
	modes: []Mode{
		simpleMode(240, 320, 36, 48, BusFormatRGB565),
	},
}

func init() {
	register(st7789vModel)
}

// ST7789V creates a Controller for a Sitronix ST7789V display controller in
// SPI mode.
func ST7789V(c Conn, config *Config) (*Controller, error) {
	if config == nil {
		config = new(Config)
	}
	return newController(c, st7789vModel, config)
}
