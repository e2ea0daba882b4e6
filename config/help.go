package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Ride analytics engine

Usage:
  analytics [-mode process|serve|token] [-config-path config.yaml] [-source file.csv] [-out dir]

Modes:
  process   load the ride records, compute every artifact and write them to the output directory
  serve     run the admin HTTP API with the websocket pipeline event stream
  token     print an ADMIN access token for the admin API

Options:
  -mode          application mode (default: process)
  -config-path   path to the yaml config file (default: config.yaml)
  -source        ride records file, overrides PIPELINE_SOURCE_PATH
  -out           output directory, overrides PIPELINE_OUTPUT_DIR
  -help          show this message

Every config key can also be set through the environment, e.g. PIPELINE_FLOAT_PRECISION=3.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
