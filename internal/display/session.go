package display

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Session is a live panel: geometry, orientation, the initialized controller
// and the single reused framebuffer. It is the only owner of the bus handle
// for the process lifetime.
type Session struct {
	drv *Driver
	fb  *Framebuffer
	bus i2c.BusCloser
}

// NewSession builds a session over an existing transport, initializes the
// controller and wipes its RAM. An error here means there is no usable panel.
func NewSession(t Transport, geo Geometry, orient Orientation) (*Session, error) {
	drv, err := NewDriver(t, geo, orient)
	if err != nil {
		return nil, err
	}
	fb, err := NewFramebuffer(geo)
	if err != nil {
		return nil, err
	}
	if err := drv.Init(); err != nil {
		return nil, fmt.Errorf("initializing controller: %w", err)
	}
	if err := drv.Clear(); err != nil {
		return nil, fmt.Errorf("clearing controller RAM: %w", err)
	}
	return &Session{drv: drv, fb: fb}, nil
}

// Open opens the named I2C bus (empty string selects the first available one)
// and returns an initialized session for the device at addr.
func Open(busName string, addr uint16, geo Geometry, orient Orientation) (*Session, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("opening I2C bus %q: %w", busName, err)
	}
	s, err := NewSession(NewI2CTransport(bus, addr), geo, orient)
	if err != nil {
		bus.Close()
		return nil, err
	}
	s.bus = bus
	log.Infof("Opened %dx%d panel at 0x%02X on bus %q", geo.W, geo.H, addr, busName)
	return s, nil
}

// Geometry returns the panel geometry.
func (s *Session) Geometry() Geometry {
	return s.fb.Geometry()
}

// Render composes lines into the session framebuffer and pushes the whole
// frame in one sweep. A push failure is transient: the panel keeps the stale
// frame and the next Render replaces it entirely.
func (s *Session) Render(lines []Line, spacing, startRow int) error {
	Compose(s.fb, lines, spacing, startRow)
	return s.drv.PushFrame(s.fb)
}

// Clear blanks the panel. Used on the exit path so a stopped process does
// not leave its last frame on the glass.
func (s *Session) Clear() error {
	return s.drv.Clear()
}

// Close clears the panel best-effort and releases the bus.
func (s *Session) Close() error {
	if err := s.drv.Clear(); err != nil {
		log.Warn("Unable to clear panel on close: ", err)
	}
	if s.bus != nil {
		return s.bus.Close()
	}
	return nil
}
