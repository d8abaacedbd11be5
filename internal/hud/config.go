package hud

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddress  = 0x3C
	defaultWidth    = 88
	defaultHeight   = 48
	defaultInterval = 5
	defaultKismet   = "http://localhost:2501"
)

// Config is the shared configuration for the HUD binaries. Every field has a
// working default so the HUDs run with no config file at all.
type Config struct {
	Display struct {
		Bus     string `yaml:"bus"`
		Address uint16 `yaml:"address"`
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
		Rotate  int    `yaml:"rotate"`
	} `yaml:"display"`
	Interval int `yaml:"interval"`
	Kismet   struct {
		URL   string `yaml:"url"`
		Token string `yaml:"token"`
		User  string `yaml:"user"`
		Pass  string `yaml:"pass"`
	} `yaml:"kismet"`
	Gpsd struct {
		Address string `yaml:"address"`
	} `yaml:"gpsd"`
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, err
	}

	if c.Display.Address == 0 {
		c.Display.Address = defaultAddress
	}
	if c.Display.Width == 0 {
		c.Display.Width = defaultWidth
	}
	if c.Display.Height == 0 {
		c.Display.Height = defaultHeight
	}
	if c.Interval == 0 {
		c.Interval = defaultInterval
	}
	if c.Kismet.URL == "" {
		c.Kismet.URL = defaultKismet
	}

	if c.Display.Width < 0 {
		return nil, fmt.Errorf("display width must be positive, got %d", c.Display.Width)
	}
	if c.Display.Height < 0 || c.Display.Height%8 != 0 {
		return nil, fmt.Errorf("display height must be a positive multiple of 8, got %d", c.Display.Height)
	}
	if c.Display.Rotate != 0 && c.Display.Rotate != 1 {
		return nil, fmt.Errorf("rotate must be 0 or 1, got %d", c.Display.Rotate)
	}
	if c.Interval < 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", c.Interval)
	}

	return c, nil
}

// ReadConfig loads the config from path. A missing file is not an error: the
// defaults describe the standard pihud wiring.
func ReadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debugf("No config at %s, using defaults", path)
		return parseConfig(nil)
	}
	if err != nil {
		return nil, err
	}
	return parseConfig(content)
}
