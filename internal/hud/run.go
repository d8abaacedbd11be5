package hud

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/probablyoffline/pi-microhud/internal/display"
)

// Panel is the display surface the loop draws on. Satisfied by
// *display.Session; tests substitute a recorder.
type Panel interface {
	Render(lines []display.Line, spacing, startRow int) error
	Clear() error
}

// Loop is one HUD redraw cycle repeated at a fixed interval. It is strictly
// sequential: gather, compose, present, sleep. The interval doubles as the
// retry cadence, so no error path needs its own backoff.
type Loop struct {
	Interval time.Duration
	Spacing  int
	StartRow int // display.CenterBlock to center the block

	// Build gathers the cycle's text. cycle counts redraws from zero.
	Build func(cycle int) []display.Line
}

// Run redraws until stop delivers, then blanks the panel best-effort so the
// glass does not keep showing the final frame of a dead process. A failed
// push keeps the previous frame on the glass and is retried wholesale next
// cycle.
func (l *Loop) Run(panel Panel, stop <-chan os.Signal) {
	for cycle := 0; ; cycle++ {
		if err := panel.Render(l.Build(cycle), l.Spacing, l.StartRow); err != nil {
			log.Warn("Frame push failed, keeping stale frame: ", err)
		}

		select {
		case <-stop:
			log.Info("Shutting down, clearing panel")
			if err := panel.Clear(); err != nil {
				log.Warn("Unable to clear panel: ", err)
			}
			return
		case <-time.After(l.Interval):
		}
	}
}
