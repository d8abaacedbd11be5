package display

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

const (
	ctrlCommand = 0x00
	ctrlData    = 0x40

	// The bus transaction mechanism caps a single tagged write at 16
	// payload bytes, so larger data pushes are chunked.
	maxChunk = 16
)

// Transport issues tagged writes to the display controller. Implementations
// must keep chunks in order and must not retry failed transactions.
type Transport interface {
	WriteCommand(b []byte) error
	WriteData(b []byte) error
}

// BusError wraps a transport-level failure. A failed frame push leaves stale
// pixels on the glass until the next full redraw; a failed init leaves no
// usable panel at all.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("display: %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// I2CTransport drives the controller through a periph.io I2C device handle.
type I2CTransport struct {
	dev *i2c.Dev
}

// NewI2CTransport wraps an already opened bus and a 7-bit device address.
func NewI2CTransport(bus i2c.Bus, addr uint16) *I2CTransport {
	return &I2CTransport{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

func (t *I2CTransport) WriteCommand(b []byte) error {
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, ctrlCommand)
	buf = append(buf, b...)
	if err := t.dev.Tx(buf, nil); err != nil {
		return &BusError{Op: "write command", Err: err}
	}
	return nil
}

func (t *I2CTransport) WriteData(b []byte) error {
	buf := make([]byte, maxChunk+1)
	for len(b) > 0 {
		n := len(b)
		if n > maxChunk {
			n = maxChunk
		}
		buf[0] = ctrlData
		copy(buf[1:], b[:n])
		if err := t.dev.Tx(buf[:n+1], nil); err != nil {
			return &BusError{Op: "write data", Err: err}
		}
		b = b[n:]
	}
	return nil
}
