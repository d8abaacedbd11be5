package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "Uptime 00:00:00"},
		{5 * time.Second, "Uptime 00:00:05"},
		{61 * time.Second, "Uptime 00:01:01"},
		{time.Hour + 2*time.Minute + 3*time.Second, "Uptime 01:02:03"},
		{25 * time.Hour, "Uptime 25:00:00"},
		{-time.Second, "Uptime 00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.d))
	}
}

func TestClockStartsAtZero(t *testing.T) {
	c := NewClock()
	assert.Equal(t, "Uptime 00:00:00", c.Uptime())
}
