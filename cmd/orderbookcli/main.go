// Command orderbookcli runs a top-N order book aggregation stream from the
// command line. It wires internal/config, internal/stream, and internal/audit
// together behind two subcommands: run (process a CSV feed) and bench
// (measure dispatch throughput against synthetic rows).
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Error().Err(err).Msg("orderbookcli failed")
		os.Exit(1)
	}
}
