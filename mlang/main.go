// Command mlang parses and type checks programs of the M matrix language.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/mlang/cli"
)

func main() {
	var stop context.CancelFunc
	mlang.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Execute()
}
