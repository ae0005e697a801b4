// Command panel-test brings an attached panel controller through a full
// lifecycle cycle: prepare, suspend, resume, unprepare.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/panel"
)

func main() {
	configFlag := flag.String("config", "", "YAML probe configuration")
	modelFlag := flag.String("model", "", "Controller model (overrides config)")
	spiBusFlag := flag.Int("spi-bus", -1, "SPI bus (overrides config)")
	spiDeviceFlag := flag.Int("spi-dev", -1, "SPI device (overrides config)")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin (overrides config)")
	dcPinFlag := flag.String("dc", "", "Data/Command GPIO pin (overrides config)")
	holdFlag := flag.Duration("hold", 2*time.Second, "Time to hold each lifecycle state")
	listFlag := flag.Bool("list", false, "List known controller models")
	flag.Parse()

	if *listFlag {
		fmt.Println("known models:")
		for _, name := range panel.Models() {
			fmt.Println(" ", name)
		}
		return
	}

	config, err := Load(*configFlag)
	if err != nil {
		fatal(err)
	}
	if *modelFlag != "" {
		config.Model = *modelFlag
	}
	if *spiBusFlag >= 0 {
		config.SPI.Bus = *spiBusFlag
	}
	if *spiDeviceFlag >= 0 {
		config.SPI.Device = *spiDeviceFlag
	}
	if *resetPinFlag != "" {
		config.Pins.Reset = *resetPinFlag
	}
	if *dcPinFlag != "" {
		config.Pins.DC = *dcPinFlag
	}
	if config.Model == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -model <compatible> [flags]\n", os.Args[0])
		os.Exit(1)
	}

	var rotation panel.Rotation
	switch config.Rotation {
	case 0:
		rotation = panel.NoRotation
	case 90:
		rotation = panel.Rotate90
	case 180:
		rotation = panel.Rotate180
	case 270:
		rotation = panel.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %d specified", config.Rotation))
	}

	watchdog, err := config.WatchdogDuration()
	if err != nil {
		fatal(fmt.Errorf("invalid watchdog: %w", err))
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	spiConfig := &panel.SPIConfig{
		Bus:     config.SPI.Bus,
		Device:  config.SPI.Device,
		SpeedHz: config.SPI.SpeedHz,
		Reset:   gpioreg.ByName(config.Pins.Reset),
		DC:      gpioreg.ByName(config.Pins.DC),
	}
	if config.Pins.CE != "" {
		spiConfig.CE = gpioreg.ByName(config.Pins.CE)
	}

	conn, err := panel.OpenSPI(spiConfig)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", conn)

	ctrl, err := panel.New(conn, &panel.Config{
		Model:    config.Model,
		Rotation: rotation,
		Watchdog: watchdog,
	})
	if err != nil {
		_ = conn.Close()
		fatal(err)
	}
	defer ctrl.Close()

	fmt.Printf("using controller: %s\n", ctrl)
	for _, mode := range ctrl.Modes() {
		flags := make([]string, 0, 3)
		if mode.NegHSync {
			flags = append(flags, "-hsync")
		}
		if mode.NegVSync {
			flags = append(flags, "-vsync")
		}
		if mode.Preferred {
			flags = append(flags, "preferred")
		}
		fmt.Printf("  mode %s %s %s\n", mode, mode.Format, strings.Join(flags, " "))
	}

	steps := []struct {
		name string
		call func() error
	}{
		{"prepare", ctrl.Prepare},
		{"suspend", ctrl.Suspend},
		{"resume", ctrl.Resume},
		{"unprepare", ctrl.Unprepare},
	}
	for _, step := range steps {
		start := time.Now()
		if err := step.call(); err != nil {
			fatal(fmt.Errorf("%s failed: %w", step.name, err))
		}
		fmt.Printf("%-9s ok in %s, state %s\n", step.name, time.Since(start).Round(time.Millisecond), ctrl.State())
		time.Sleep(*holdFlag)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
