package display

// Framebuffer is a bit-packed monochrome canvas in the controller's native
// page layout: byte (y/8)*W+x holds the 8-pixel column at (x, page y/8),
// bit 0 topmost. It is allocated once and reused for every frame.
type Framebuffer struct {
	geo Geometry
	pix []byte
}

func NewFramebuffer(geo Geometry) (*Framebuffer, error) {
	if err := geo.validate(); err != nil {
		return nil, err
	}
	return &Framebuffer{
		geo: geo,
		pix: make([]byte, geo.W*geo.Pages()),
	}, nil
}

func (f *Framebuffer) Geometry() Geometry {
	return f.geo
}

// Bytes is the raw page-packed pixel data, as streamed to the controller.
func (f *Framebuffer) Bytes() []byte {
	return f.pix
}

func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
}

// SetPixel sets or clears a single pixel. Out-of-bounds coordinates are
// dropped, never wrapped.
func (f *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || x >= f.geo.W || y < 0 || y >= f.geo.H {
		return
	}
	idx := (y/8)*f.geo.W + x
	mask := byte(1) << uint(y%8)
	if on {
		f.pix[idx] |= mask
	} else {
		f.pix[idx] &^= mask
	}
}

// Pixel reports whether the pixel at (x, y) is lit. Out of bounds is off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= f.geo.W || y < 0 || y >= f.geo.H {
		return false
	}
	return f.pix[(y/8)*f.geo.W+x]&(1<<uint(y%8)) != 0
}

// blitGlyph draws one 5x8 column-major glyph. Columns past the right edge
// are clipped by SetPixel's bounds check.
func (f *Framebuffer) blitGlyph(x, y int, g glyph) {
	for col := 0; col < glyphWidth; col++ {
		bits := g[col]
		for row := 0; row < FontHeight; row++ {
			if bits&(1<<uint(row)) != 0 {
				f.SetPixel(x+col, y+row, true)
			}
		}
	}
}

// DrawText blits s left to right at the fixed glyph pitch, starting at x.
// Returns the pixel width consumed, which the layout engine uses for
// alignment math.
func (f *Framebuffer) DrawText(x, y int, s string) int {
	cx := x
	for i := 0; i < len(s); i++ {
		f.blitGlyph(cx, y, glyphFor(rune(s[i])))
		cx += GlyphPitch
	}
	return len(s) * GlyphPitch
}

// TextWidth is DrawText's width without drawing anything.
func TextWidth(s string) int {
	return len(s) * GlyphPitch
}
