// Egadmin inspects and converts published election records.
package main

import (
	"os"

	"go.dedis.ch/onet/v3/log"
	cli "gopkg.in/urfave/cli.v1"
)

var gitTag = "dev"

func createApp() *cli.App {
	cliApp := cli.NewApp()
	cliApp.Name = "egadmin"
	cliApp.Usage = "Inspect, check and convert published election records."
	cliApp.Version = gitTag
	cliApp.Commands = cmds // stored in "commands.go"
	cliApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "debug, d",
			Value: 0,
			Usage: "debug-level: 1 for terse, 5 for maximal",
		},
		cli.StringFlag{
			Name:   "config, c",
			EnvVar: "EG_CONFIG",
			Usage:  "path to the TOML configuration file",
		},
	}
	cliApp.Before = func(c *cli.Context) error {
		log.SetDebugVisible(c.Int("debug"))
		return nil
	}
	return cliApp
}

func main() {
	err := createApp().Run(os.Args)
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}
