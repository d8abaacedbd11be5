package hud

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probablyoffline/pi-microhud/internal/display"
	"github.com/probablyoffline/pi-microhud/internal/feed"
)

type recordingPanel struct {
	mu        sync.Mutex
	frames    [][]display.Line
	renderErr error
	cleared   bool
}

func (p *recordingPanel) Render(lines []display.Line, spacing, startRow int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, lines)
	return p.renderErr
}

func (p *recordingPanel) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared = true
	return nil
}

func (p *recordingPanel) frameCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func runLoop(t *testing.T, l *Loop, panel Panel, cycles int) {
	t.Helper()
	stop := make(chan os.Signal, 1)
	done := make(chan struct{})

	build := l.Build
	count := 0
	l.Build = func(cycle int) []display.Line {
		count++
		if count == cycles {
			stop <- os.Interrupt
		}
		return build(cycle)
	}

	go func() {
		l.Run(panel, stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopRendersAndClearsOnStop(t *testing.T) {
	panel := &recordingPanel{}
	l := &Loop{
		Interval: time.Millisecond,
		StartRow: display.CenterBlock,
		Build: func(cycle int) []display.Line {
			return []display.Line{{Text: fmt.Sprintf("cycle %d", cycle)}}
		},
	}

	runLoop(t, l, panel, 3)

	assert.GreaterOrEqual(t, panel.frameCount(), 3)
	assert.True(t, panel.cleared, "panel must be blanked on shutdown")
	assert.Equal(t, "cycle 0", panel.frames[0][0].Text)
}

func TestLoopSurvivesPushFailures(t *testing.T) {
	panel := &recordingPanel{renderErr: &display.BusError{Op: "write data", Err: errors.New("no ack")}}
	l := &Loop{
		Interval: time.Millisecond,
		Build: func(cycle int) []display.Line {
			return []display.Line{{Text: "x"}}
		},
	}

	runLoop(t, l, panel, 3)

	// Frames keep being attempted despite the bus fault.
	assert.GreaterOrEqual(t, panel.frameCount(), 3)
}

func TestLoopSurvivesProducerOutage(t *testing.T) {
	panel := &recordingPanel{}
	clock := feed.NewClock()
	src := stubCounts{err: feed.ErrUnavailable}
	l := &Loop{
		Interval: time.Millisecond,
		StartRow: 8,
		Build: func(cycle int) []display.Line {
			return KismetLines(clock.Uptime(), src, stubFix(feed.FixNone))
		},
	}

	runLoop(t, l, panel, 2)

	require.GreaterOrEqual(t, panel.frameCount(), 2)
	frame := panel.frames[0]
	require.Len(t, frame, 3)
	assert.Contains(t, frame[0].Text, "Uptime")
	assert.Equal(t, "Kismet: --", frame[1].Text)
	assert.Equal(t, "GPS: NO", frame[2].Text)
}
