package app

import (
	"fmt"
	"os"

	"converter/packages/common/config"

	"github.com/akamensky/argparse"
)

type appArgs struct {
	Debug      *bool
	ShowLogs   *bool
	TraceLogs  *bool
	ConfigPath *string
}

var Args = new(appArgs)

func (a *appArgs) Parse() {
	parser := argparse.NewParser(
		"converter",
		"HTTP gateway of the PHP project conversion service",
	)

	a.Debug = parser.Flag("d", "debug", &argparse.Options{
		Help: "Enable debug mode",
	})
	a.ShowLogs = parser.Flag("l", "show-logs", &argparse.Options{
		Help: "Show logs in terminal",
	})
	a.TraceLogs = parser.Flag("t", "trace-logs", &argparse.Options{
		Help: "Enable trace logs",
	})
	a.ConfigPath = parser.String("c", "config", &argparse.Options{
		Help:    "Path to config file",
		Default: config.DefaultPath,
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}
