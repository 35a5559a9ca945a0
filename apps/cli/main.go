// Command radar designs teaching activities from the terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/strategy"
	logsvc "github.com/pedagogyradar/radar/services/logger"
)

func main() {
	conf := core.NewConfig()

	rl := logsvc.NewRollbarLogger(logsvc.NewZapLogger(conf, "cli"), conf)
	rl.Enable(!conf.Debug && conf.RollbarToken != "")

	catalog, err := strategy.NewCatalog(conf)
	if err != nil {
		rl.Fatal("loading strategies", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli := newCommandLine(conf, rl, catalog, bufio.NewReader(os.Stdin), os.Stdout, int(os.Stdout.Fd()))
	err = cli.run(ctx, os.Args)
	stop()
	_ = rl.Sync()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
