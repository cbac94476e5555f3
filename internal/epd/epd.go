// Package epd pushes rendered frames to the Waveshare e-paper HAT over
// SPI. It is the only package that talks to hardware; everything above it
// works on plain images.
package epd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

// Display owns the SPI port and panel handle for one session. Open it,
// push one frame, then Close; the refresh cadence lives in the external
// scheduler, not here.
type Display struct {
	port spi.PortCloser
	dev  *waveshare2in13v4.Dev
}

// Open initializes the host drivers, claims the default SPI port and wakes
// the panel.
func Open() (*Display, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}

	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("opening SPI port: %w", err)
	}

	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("attaching e-paper HAT: %w", err)
	}

	if err := dev.Init(); err != nil {
		port.Close()
		return nil, fmt.Errorf("initializing e-paper panel: %w", err)
	}

	return &Display{port: port, dev: dev}, nil
}

// Bounds reports the panel geometry so the caller can size its canvas.
func (d *Display) Bounds() image.Rectangle {
	return d.dev.Bounds()
}

// Push converts the frame to the panel's 1-bit format and performs a full
// refresh. The source image is scaled by clipping: callers should render
// at Bounds size.
func (d *Display) Push(frame image.Image) error {
	buf := image1bit.NewVerticalLSB(d.dev.Bounds())
	draw.Draw(buf, buf.Bounds(), frame, image.Point{}, draw.Src)

	if err := d.dev.Draw(d.dev.Bounds(), buf, image.Point{}); err != nil {
		return fmt.Errorf("pushing frame to panel: %w", err)
	}
	return nil
}

// Clear blanks the panel to white.
func (d *Display) Clear() error {
	if err := d.dev.Clear(color.White); err != nil {
		return fmt.Errorf("clearing panel: %w", err)
	}
	return nil
}

// Close puts the panel into deep sleep and releases the SPI port. E-paper
// retains the last frame while asleep, so this is safe after every push.
func (d *Display) Close() error {
	if err := d.dev.Sleep(); err != nil {
		log.Warn().Err(err).Msg("Putting panel to sleep failed")
	}
	if err := d.dev.Halt(); err != nil {
		log.Warn().Err(err).Msg("Halting panel failed")
	}
	return d.port.Close()
}
