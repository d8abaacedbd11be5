package feed

import (
	"bufio"
	"encoding/json"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// GPS fix states as shown on the HUD. Anything that is not a confirmed 2D or
// 3D fix collapses to FixNone: a dead gpsd and an antenna still searching
// look the same on the panel.
const (
	FixNone = "NO"
	Fix2D   = "2D"
	Fix3D   = "3D"
)

const gpsdWatch = `?WATCH={"enable":true,"json":true};` + "\n"

// GPSD polls a gpsd instance for the current fix mode.
type GPSD struct {
	Addr    string
	Timeout time.Duration
}

func NewGPSD(addr string) *GPSD {
	if addr == "" {
		addr = "localhost:2947"
	}
	return &GPSD{Addr: addr, Timeout: 3 * time.Second}
}

// FixState connects, enables watch mode and waits for the first TPV report.
// It never fails outward; every error path is a FixNone.
func (g *GPSD) FixState() string {
	conn, err := net.DialTimeout("tcp", g.Addr, g.Timeout)
	if err != nil {
		log.Debug("gpsd not reachable: ", err)
		return FixNone
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(g.Timeout))

	if _, err := conn.Write([]byte(gpsdWatch)); err != nil {
		log.Debug("gpsd watch request failed: ", err)
		return FixNone
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var report struct {
			Class string `json:"class"`
			Mode  int    `json:"mode"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &report); err != nil {
			continue
		}
		if report.Class != "TPV" {
			continue
		}
		switch report.Mode {
		case 3:
			return Fix3D
		case 2:
			return Fix2D
		default:
			return FixNone
		}
	}
	return FixNone
}
