// Package display drives a page-addressed monochrome OLED over I2C: a
// chunked bus transport, the controller command sequencing, a bit-packed
// framebuffer with a built-in 5x8 font, and a layout engine that composes
// whole text frames off-screen so the glass never shows a torn frame.
package display

import "fmt"

// Controller command set (CH1115/SSD13xx page addressing mode).
const (
	cmdSetLowColumn      = 0x00
	cmdSetHighColumn     = 0x10
	cmdSetStartLine      = 0x40
	cmdSetSegmentRemap   = 0xA0 // 0xA1 = mirrored
	cmdSetMultiplexRatio = 0xA8
	cmdSetDisplayOff     = 0xAE
	cmdSetDisplayOn      = 0xAF
	cmdSetPageAddr       = 0xB0
	cmdSetComScanInc     = 0xC0
	cmdSetComScanDec     = 0xC8
	cmdSetDisplayOffset  = 0xD3

	// The controller RAM always spans 8 pages, even when the glass uses
	// fewer rows. Clearing all of them keeps hidden rows from ever
	// bleeding into a re-windowed panel.
	physicalPages = 8
)

// Geometry is the logical panel size. It is fixed for the device's lifetime.
type Geometry struct {
	W int
	H int
}

// Pages is the number of 8-row strips covering the panel height.
func (g Geometry) Pages() int {
	return g.H / 8
}

func (g Geometry) validate() error {
	if g.W <= 0 {
		return fmt.Errorf("display: width must be positive, got %d", g.W)
	}
	if g.H <= 0 || g.H%8 != 0 {
		return fmt.Errorf("display: height must be a positive multiple of 8, got %d", g.H)
	}
	return nil
}

// Orientation is a rotation preset. Each preset fixes the segment remap and
// COM scan direction codes plus the column offset that maps the panel's
// physical column range onto its addressable range. Selected once at init;
// changing it means re-initializing the controller.
type Orientation struct {
	segRemap     byte
	comScan      byte
	columnOffset int
}

var (
	// Normal is the panel as mounted.
	Normal = Orientation{segRemap: cmdSetSegmentRemap, comScan: cmdSetComScanInc, columnOffset: 0}
	// Flipped rotates the image 180 degrees by mirroring both axes in
	// hardware. The CH1115 glass sits at the far end of the column RAM
	// when mirrored, hence the offset.
	Flipped = Orientation{segRemap: cmdSetSegmentRemap | 0x01, comScan: cmdSetComScanDec, columnOffset: 39}
)

// OrientationFor maps a rotation config value (0 = normal, 1 = 180 degrees)
// to its preset.
func OrientationFor(rotate int) (Orientation, error) {
	switch rotate {
	case 0:
		return Normal, nil
	case 1:
		return Flipped, nil
	}
	return Orientation{}, fmt.Errorf("display: unsupported rotation %d", rotate)
}

// Driver sequences controller commands over a Transport. It holds no pixel
// state of its own; frames come in as ready-made framebuffers.
type Driver struct {
	t      Transport
	geo    Geometry
	orient Orientation
}

func NewDriver(t Transport, geo Geometry, orient Orientation) (*Driver, error) {
	if err := geo.validate(); err != nil {
		return nil, err
	}
	return &Driver{t: t, geo: geo, orient: orient}, nil
}

// Init programs the multiplex ratio and orientation and switches the panel
// on. Remap and scan direction must be set before display-on, or the first
// frame flashes garbled.
func (d *Driver) Init() error {
	seq := [][]byte{
		{cmdSetDisplayOff},
		{cmdSetMultiplexRatio, byte(d.geo.H-1) & 0x3F},
		{cmdSetDisplayOffset, 0x00},
		{cmdSetStartLine},
		{d.orient.segRemap},
		{d.orient.comScan},
		{cmdSetDisplayOn},
	}
	for _, cmd := range seq {
		if err := d.t.WriteCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Clear wipes all 8 physical pages, not just the ones the glass shows.
func (d *Driver) Clear() error {
	zeros := make([]byte, d.geo.W)
	for page := 0; page < physicalPages; page++ {
		if err := d.setCursor(page, 0); err != nil {
			return err
		}
		if err := d.t.WriteData(zeros); err != nil {
			return err
		}
	}
	return nil
}

// setCursor selects the write position. col is panel-relative; the
// orientation's column offset is applied here.
func (d *Driver) setCursor(page, col int) error {
	col += d.orient.columnOffset
	seq := [][]byte{
		{cmdSetPageAddr | byte(page&0x0F)},
		{cmdSetLowColumn | byte(col&0x0F)},
		{cmdSetHighColumn | byte((col>>4)&0x0F)},
	}
	for _, cmd := range seq {
		if err := d.t.WriteCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// PushFrame streams a full framebuffer to the panel, one page row at a time.
// This is the steady-state redraw path: no re-init, no per-pixel traffic.
// Any failure aborts the push; the next cycle retries with a fresh frame.
func (d *Driver) PushFrame(fb *Framebuffer) error {
	if fb.geo != d.geo {
		return fmt.Errorf("display: framebuffer is %dx%d, panel is %dx%d", fb.geo.W, fb.geo.H, d.geo.W, d.geo.H)
	}
	for page := 0; page < d.geo.Pages(); page++ {
		if err := d.setCursor(page, 0); err != nil {
			return err
		}
		start := page * d.geo.W
		if err := d.t.WriteData(fb.pix[start : start+d.geo.W]); err != nil {
			return err
		}
	}
	return nil
}
