package feed

import (
	"fmt"
	"time"
)

// Clock tracks how long the HUD process has been running.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Uptime returns the elapsed time since the clock started, as
// "Uptime HH:MM:SS".
func (c *Clock) Uptime() string {
	return FormatUptime(time.Since(c.start))
}

// FormatUptime renders a duration as "Uptime HH:MM:SS". Hours do not roll
// over at 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("Uptime %02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
