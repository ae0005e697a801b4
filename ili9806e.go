package panel

import (
	"time"

	"github.com/BeatGlow/panel/conn"
)

// Page 1 registers (from the ILI9806E datasheet).
const (
	ili9806eIFMODE1  = 0x08 // Interface Mode Control 1
	ili9806eDISCTRL1 = 0x20 // Display Function Control 1
	ili9806eDISCTRL2 = 0x21 // Display Function Control 2
	ili9806eRESCTRL  = 0x30 // Resolution Control
	ili9806eINVTR    = 0x31 // Display Inversion Control
	ili9806ePWCTRL1  = 0x40 // Power Control 1
	ili9806ePWCTRL2  = 0x41 // Power Control 2
	ili9806ePWCTRL3  = 0x42 // Power Control 3
	ili9806ePWCTRL4  = 0x43 // Power Control 4
	ili9806ePWCTRL5  = 0x44 // Power Control 5
	ili9806ePWCTRL9  = 0x50 // Power Control 9
	ili9806ePWCTRL10 = 0x51 // Power Control 10
	ili9806eVMCTRL1  = 0x52 // VCOM Control 1
	ili9806eVMCTRL2  = 0x53 // VCOM Control 2
	ili9806eSRCTADJ1 = 0x60 // Source Timing Adjust 1
	ili9806eSRCTADJ2 = 0x61 // Source Timing Adjust 2
	ili9806eSRCTADJ3 = 0x62 // Source Timing Adjust 3
	ili9806eSRCTADJ4 = 0x63 // Source Timing Adjust 4
	ili9806ePGamma   = 0xa0 // Positive Gamma Control 1~16
	ili9806eNGamma   = 0xc0 // Negative Gamma Correction 1~16
)

// Interface Mode Control 1 bit fields.
const (
	ili9806eIFMODE1SeptSDIO  = 1 << 3 // 1 = two data pins
	ili9806eIFMODE1SDOStatus = 1 << 4 // 0 = SDO has output enable
)

// Display Function Control 2 bit fields.
const (
	ili9806eDISCTRL2EPL  = 1 << 0 // DE polarity (1 = active high)
	ili9806eDISCTRL2DPL  = 1 << 1 // PCLK polarity (1 = fetch on falling edge)
	ili9806eDISCTRL2HSPL = 1 << 2 // HS polarity (1 = active high)
	ili9806eDISCTRL2VSPL = 1 << 3 // VS polarity (1 = active high)
)

// Resolution Control values.
const (
	ili9806eRes480x864 = 0x0
	ili9806eRes480x854 = 0x1
	ili9806eRes480x800 = 0x2
	ili9806eRes480x640 = 0x3
	ili9806eRes480x720 = 0x4
)

// Display Inversion Control values.
const (
	ili9806eINVTRColumn = 0x0
	ili9806eINVTR1Dot   = 0x1
	ili9806eINVTR2Dot   = 0x2
	ili9806eINVTR3Dot   = 0x3
	ili9806eINVTR4Dot   = 0x4
)

// Page 7 registers.
const (
	ili9806eVGLREGEN = 0x17 // VGL_REG EN
)

// The page-switching register, valid on every page. Selecting a page takes
// the vendor unlock payload: magic tag, vendor id triplet, requested page.
const ili9806eENEXTC = 0xff

var ili9806ePGammaTable = []byte{
	0x00, 0x07, 0x0c, 0x0b, 0x03, 0x07, 0x06, 0x04,
	0x08, 0x0c, 0x13, 0x06, 0x0d, 0x19, 0x10, 0x00,
}

var ili9806eNGammaTable = []byte{
	0x00, 0x07, 0x0c, 0x0b, 0x03, 0x07, 0x07, 0x04,
	0x08, 0x0c, 0x13, 0x06, 0x0d, 0x18, 0x10, 0x00,
}

// Page 6 holds the GIP timing block. The registers are not documented by the
// vendor beyond the comments below; the values are fixed constants, not
// parameters.
var ili9806eGIPSet0 = []byte{ // 0x00.. GIP_0: STV/CLK rise timing
	0x20, 0x0a, 0x00, 0x00, 0x01, 0x01, 0x98, 0x06,
	0x01, 0x80, 0x00, 0x00, 0x01, 0x01, 0x00, 0x00,
	0xf0, 0xf4, 0x01, 0x00, 0x00, 0xc0, 0x08, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var ili9806eGIPSet1 = []byte{ // 0x20.. GIP_1
	0x01, 0x23, 0x45, 0x67, 0x01, 0x23, 0x45, 0x67,
}

var ili9806eGIPSet2 = []byte{ // 0x30.. GIP_2
	0x11, 0x11, 0x00, 0xee, 0xff, 0xbb, 0xaa, 0xdd,
	0xcc, 0x66, 0x77, 0x22, 0x22, 0x22, 0x22, 0x22,
	0x22,
}

func ili9806eSequence(_ *Config) []Command {
	seq := []Command{
		SelectPage(1),

		WriteReg(1, ili9806eIFMODE1, ili9806eIFMODE1SDOStatus),
		WriteReg(1, ili9806eDISCTRL2, ili9806eDISCTRL2EPL),
		WriteReg(1, ili9806eRESCTRL, ili9806eRes480x800),
		WriteReg(1, ili9806eINVTR, ili9806eINVTRColumn),

		WriteReg(1, ili9806ePWCTRL1, 0x10),
		WriteReg(1, ili9806ePWCTRL2, 0x55),
		WriteReg(1, ili9806ePWCTRL3, 0x02),
		WriteReg(1, ili9806ePWCTRL4, 0x09),
		WriteReg(1, ili9806ePWCTRL5, 0x07),
		WriteReg(1, ili9806ePWCTRL9, 0x78),
		WriteReg(1, ili9806ePWCTRL10, 0x78),

		WriteReg(1, ili9806eVMCTRL1, 0x00),
		WriteReg(1, ili9806eVMCTRL2, 0x6d),

		WriteReg(1, ili9806eSRCTADJ1, 0x07),
		WriteReg(1, ili9806eSRCTADJ2, 0x00),
		WriteReg(1, ili9806eSRCTADJ3, 0x08),
		WriteReg(1, ili9806eSRCTADJ4, 0x00),
	}

	for i, v := range ili9806ePGammaTable {
		seq = append(seq, WriteReg(1, ili9806ePGamma+byte(i), v))
	}
	for i, v := range ili9806eNGammaTable {
		seq = append(seq, WriteReg(1, ili9806eNGamma+byte(i), v))
	}

	seq = append(seq, SelectPage(6))
	for i, v := range ili9806eGIPSet0 {
		seq = append(seq, WriteReg(6, byte(i), v))
	}
	for i, v := range ili9806eGIPSet1 {
		seq = append(seq, WriteReg(6, 0x20+byte(i), v))
	}
	for i, v := range ili9806eGIPSet2 {
		seq = append(seq, WriteReg(6, 0x30+byte(i), v))
	}
	seq = append(seq,
		WriteReg(6, 0x52, 0x10), // undocumented
		WriteReg(6, 0x53, 0x10), // GOUT_VGLO Control
	)

	seq = append(seq,
		SelectPage(7),
		WriteReg(7, ili9806eVGLREGEN, 0x22),
		WriteReg(7, 0x02, 0x77), // undocumented
		WriteReg(7, 0xe1, 0x79), // undocumented

		SelectPage(0),
		WriteReg(0, dcsSetTearOn),
		ExitSleep(),
		Delay(sleepOutSettle),
		DisplayOn(),
	)

	return seq
}

// nds040480800V3Mode is the single fixed mode of the NDS040480800-V3 module
// built around this controller.
var nds040480800V3Mode = Mode{
	Width:      480,
	Height:     800,
	WidthMM:    51,
	HeightMM:   85,
	Clock:      30000,
	HSyncStart: 480 + 25,
	HSyncEnd:   480 + 25 + 54,
	HTotal:     480 + 25 + 54 + 25,
	VSyncStart: 800 + 25,
	VSyncEnd:   800 + 25 + 14,
	VTotal:     800 + 25 + 14 + 22,
	NegHSync:   true,
	NegVSync:   true,
	Preferred:  true,
	Format:     BusFormatRGB666,
}

var ili9806eModel = &Model{
	name:       "ILI9806E",
	compatible: []string{"newdisplay,nds040480800-v3", "nds040480800-v3"},
	pages: pageMap{
		pages: []int{0, 1, 6, 7},
		unlock: func(page int) (byte, []byte) {
			return ili9806eENEXTC, []byte{0xff, 0x98, 0x06, 0x04, byte(page)}
		},
	},
	spiMode: conn.SPIMode0,
	// Min 10 us reset low; 5 ms settle in sleep-in mode, 120 ms in
	// sleep-out mode.
	reset:    ResetPulse(15*time.Microsecond, 125*time.Millisecond),
	sequence: ili9806eSequence,
	modes:    []Mode{nds040480800V3Mode},
}

func init() {
	register(ili9806eModel)
}

// ILI9806E creates a Controller for an Ilitek ILI9806E a-Si TFT LCD
// controller.
func ILI9806E(c Conn, config *Config) (*Controller, error) {
	if config == nil {
		config = new(Config)
	}
	return newController(c, ili9806eModel, config)
}
