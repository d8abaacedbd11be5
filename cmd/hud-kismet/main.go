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

// The scanner HUD stacks its rows from a fixed top padding so the first line
// is never clipped by the bezel.
const startRow = 8

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

	kismet, err := feed.NewKismet(conf.Kismet.URL, conf.Kismet.Token, conf.Kismet.User, conf.Kismet.Pass)
	if err != nil {
		log.Fatal(err)
	}
	gps := feed.NewGPSD(conf.Gpsd.Address)
	clock := feed.NewClock()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	loop := &hud.Loop{
		Interval: time.Duration(conf.Interval) * time.Second,
		StartRow: startRow,
		Build: func(cycle int) []display.Line {
			return hud.KismetLines(clock.Uptime(), kismet, gps)
		},
	}
	loop.Run(panel, signalChan)

	log.Info("Done...")
}
