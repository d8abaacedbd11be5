package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/probablyoffline/pi-microhud/internal/display"
	"github.com/probablyoffline/pi-microhud/internal/feed"
	"github.com/probablyoffline/pi-microhud/internal/hud"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func runHUD(configPath string) {
	conf, err := hud.ReadConfig(configPath)
	if err != nil {
		log.Fatal("Unable to read config: ", err)
	}

	orient, err := display.OrientationFor(conf.Display.Rotate)
	if err != nil {
		log.Fatal(err)
	}
	geo := display.Geometry{W: conf.Display.Width, H: conf.Display.Height}

	panel, err := display.Open(conf.Display.Bus, conf.Display.Address, geo, orient)
	if err != nil {
		log.Fatal("No usable panel: ", err)
	}
	defer panel.Close()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	filter := feed.AddrFilter{OnlyUp: true, IPv4: true}
	loop := &hud.Loop{
		Interval: time.Duration(conf.Interval) * time.Second,
		StartRow: display.CenterBlock,
		Build: func(cycle int) []display.Line {
			// Body alignment flips every cycle; the hostname header
			// stays centered.
			return hud.IPLines(feed.Hostname(), feed.AddressStrings(filter), cycle%2 == 1)
		},
	}
	loop.Run(panel, signalChan)

	log.Info("Done...")
}
