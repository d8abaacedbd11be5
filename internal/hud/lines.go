package hud

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/probablyoffline/pi-microhud/internal/display"
	"github.com/probablyoffline/pi-microhud/internal/feed"
)

// CountsSource yields wireless scanner counts, or an error when the scanner
// is unreachable for this cycle.
type CountsSource interface {
	Counts() (feed.Counts, error)
}

// FixSource yields the current GPS fix state. It never fails.
type FixSource interface {
	FixState() string
}

// countsPlaceholder stands in for the AP/Wifi/BT lines when Kismet is down,
// so the panel shows the outage instead of silently losing rows.
const countsPlaceholder = "Kismet: --"

// KismetLines builds the scanner HUD frame: uptime, device counts (or the
// outage placeholder) and the GPS fix, all left aligned. A counts failure
// never stops the frame; uptime and GPS still render.
func KismetLines(uptime string, counts CountsSource, gps FixSource) []display.Line {
	lines := []display.Line{{Text: uptime, Align: display.AlignLeft}}

	if c, err := counts.Counts(); err != nil {
		log.Warn("No scanner counts this cycle: ", err)
		lines = append(lines, display.Line{Text: countsPlaceholder, Align: display.AlignLeft})
	} else {
		lines = append(lines,
			display.Line{Text: fmt.Sprintf("AP: %d", c.AP), Align: display.AlignLeft},
			display.Line{Text: fmt.Sprintf("Wifi: %d", c.Wifi), Align: display.AlignLeft},
			display.Line{Text: fmt.Sprintf("BT: %d", c.BT), Align: display.AlignLeft},
		)
	}

	lines = append(lines, display.Line{Text: "GPS: " + gps.FixState(), Align: display.AlignLeft})
	return lines
}

// ipBodyRows is how many address rows fit under the hostname header.
const ipBodyRows = 2

// IPLines builds the address HUD frame: hostname centered on top, up to two
// address rows below it. The body alignment alternates left and right across
// cycles (the original's attention-drawing flip), controlled by flip.
func IPLines(hostname string, addrs []string, flip bool) []display.Line {
	bodyAlign := display.AlignLeft
	if flip {
		bodyAlign = display.AlignRight
	}

	lines := []display.Line{{Text: hostname, Align: display.AlignCenter}}
	for i := 0; i < ipBodyRows; i++ {
		var text string
		if i < len(addrs) {
			text = addrs[i]
		}
		lines = append(lines, display.Line{Text: text, Align: bodyAlign})
	}
	return lines
}
