package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	buildTime    = "unknown"
	buildVersion = "dev"
)

func rootCmd() *cobra.Command {
	configPath := ""
	root := &cobra.Command{
		Use:   "hud-kismet",
		Short: "Wireless scanner HUD for a small I2C OLED panel",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Lookup("debug").Changed {
				log.SetLevel(log.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			runHUD(configPath)
		},
	}

	root.AddCommand(newVersionCmd())
	root.PersistentFlags().Bool("debug", false, "Turn on debug logging.")
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the configuration file.")

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
		},
	}
}
