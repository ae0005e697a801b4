// Package panel contains command sequencers for register-addressed LCD
// panel controllers attached over a MIPI-DBI style command/data bus.
package panel

import (
	"errors"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("PANEL_DEBUG") != ""
}

// Errors
var (
	ErrUnknownModel = errors.New("panel: unknown controller model")
)

// State is the lifecycle state of a Controller.
type State uint8

// Lifecycle states.
const (
	Off State = iota
	Resetting
	Initializing
	On
	Suspended
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case Resetting:
		return "resetting"
	case Initializing:
		return "initializing"
	case On:
		return "on"
	case Suspended:
		return "suspended"
	default:
		return "invalid"
	}
}

// Rotation defines the panel scan-out rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}
