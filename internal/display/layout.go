package display

// Align is a horizontal alignment policy for one text line.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "unknown"
}

// Line is one unit of text to render. Lines are built fresh every redraw
// cycle and have no identity across frames.
type Line struct {
	Text  string
	Align Align
}

// UniformLines applies one alignment to every text.
func UniformLines(texts []string, a Align) []Line {
	lines := make([]Line, len(texts))
	for i, s := range texts {
		lines[i] = Line{Text: s, Align: a}
	}
	return lines
}

const (
	// leftMargin keeps left-aligned text off the glass bezel.
	leftMargin = 2

	// CenterBlock as a start row centers the whole block vertically.
	CenterBlock = -1
)

// Compose clears fb and draws lines into it, stacked top to bottom with
// spacing pixels between rows. startRow is the top row of the first line, or
// CenterBlock to center the block on the panel. Lines whose row falls outside
// the panel are dropped whole; nothing is ever partially drawn or wrapped.
//
// The frame is complete in memory before any bus traffic happens, so the
// panel never shows a torn frame.
func Compose(fb *Framebuffer, lines []Line, spacing, startRow int) {
	fb.Clear()

	geo := fb.Geometry()
	n := len(lines)
	if n == 0 {
		return
	}

	y0 := startRow
	if y0 == CenterBlock {
		total := n*FontHeight + (n-1)*spacing
		y0 = (geo.H - total) / 2
		if y0 < 0 {
			y0 = 0
		}
	}

	for i, line := range lines {
		y := y0 + i*(FontHeight+spacing)
		if y < 0 || y > geo.H-FontHeight {
			continue
		}

		width := TextWidth(line.Text)
		var x int
		switch line.Align {
		case AlignRight:
			x = geo.W - width
		case AlignCenter:
			x = (geo.W - width) / 2
			if x < 0 {
				x = 0
			}
		default:
			x = leftMargin
		}
		fb.DrawText(x, y, line.Text)
	}
}
